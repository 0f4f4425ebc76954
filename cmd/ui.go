package cmd

import (
	"fmt"

	"programctl/internal/api"
	"programctl/internal/store"
	"programctl/internal/tui"
	"programctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui [list | view <id> | edit <id> | new]",
		Short: "Open the interactive terminal UI",
		Long: `Opens the terminal UI on the given screen, the Program list by default.

Screens:
  list         the Program list (enter view, e edit, n new, d delete)
  view <id>    one Program (b back, e edit, o save cover, y copy cover)
  edit <id>    the edit form (ctrl+s save, esc back)
  new          the create form

Warnings and errors are shown in the status bar instead of on stderr.`,
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: []string{"list", "view", "edit", "new"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}

			route, err := tui.ParseRoute(args, api.ListQuery{Size: cfg.UI.PageSize, Sort: cfg.UI.Sort})
			if err != nil {
				return err
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}

			logChannel := logging.InitForTUI(level)
			defer logging.CloseTUIChannel()

			actions := store.NewActions(store.New(), client)
			app := tui.NewApp(cmd.Context(), actions, client, tui.Options{
				Start:    route,
				PageSize: cfg.UI.PageSize,
				Sort:     cfg.UI.Sort,
				Logs:     logChannel,
			})
			defer app.Close()

			// Query the terminal background before Bubble Tea takes over stdin.
			_ = lipgloss.HasDarkBackground()

			if _, err := tui.NewProgram(app, tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("running terminal UI: %w", err)
			}
			return nil
		},
	}
}
