package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"programctl/internal/api"
	"programctl/internal/config"
	"programctl/internal/store"
	"programctl/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	apiURLFlag   string
	logLevelFlag string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "programctl",
	Short: "Manage Programs from the terminal",
	Long: `programctl is a terminal client for the Program resource of the
administration backend. It lists, shows, creates, edits and deletes
Programs either through plain commands or through an interactive
terminal UI (programctl ui).`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed requests)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "programctl version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is layered ~/.config/programctl/config.yaml and ./.programctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "base URL of the backend, overrides api.baseURL")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error), overrides logLevel")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, yaml or json")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// loadConfig layers the config files and applies the command-line
// overrides on top.
func loadConfig() (config.ProgramctlConfig, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.ProgramctlConfig{}, err
	}
	if apiURLFlag != "" {
		cfg.API.BaseURL = apiURLFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return config.ProgramctlConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is what a command needs to talk to the backend.
type session struct {
	cfg     config.ProgramctlConfig
	client  *api.Client
	actions *store.Actions
}

// newSession loads the configuration, sets up CLI logging on stderr and
// builds the client. Commands run one action at a time, so the list
// refresh after create and delete is switched off.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	actions := store.NewActions(store.New(), client)
	actions.RefreshAfterWrite = false

	return &session{cfg: cfg, client: client, actions: actions}, nil
}

func newClient(cfg config.ProgramctlConfig) (*api.Client, error) {
	return api.NewClient(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Timeout:  cfg.API.Timeout,
		RetryMax: cfg.API.RetryMax,
	})
}
