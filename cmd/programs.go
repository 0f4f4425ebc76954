package cmd

import (
	"fmt"
	"strconv"

	"programctl/internal/api"
	"programctl/internal/program"

	"github.com/spf13/cobra"
)

// programFlags are the field flags shared by create, update and patch.
type programFlags struct {
	title       string
	description string
	startDate   string
	endDate     string
	tags        string
	coverPath   string
	userID      int64
}

func (f *programFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "title, 5 to 30 characters")
	cmd.Flags().StringVar(&f.description, "description", "", "description, up to 300 characters")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "tags, 3 to 30 characters")
	cmd.Flags().StringVar(&f.coverPath, "cover", "", "path to the cover image")
	cmd.Flags().Int64Var(&f.userID, "user-id", 0, "id of the owning user (0 removes the owner on update)")
}

// apply copies every flag the user set onto p.
func (f *programFlags) apply(cmd *cobra.Command, p program.Program) (program.Program, error) {
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = f.title
	}
	if changed("description") {
		p.Description = f.description
	}
	if changed("start-date") {
		p.StartDate = f.startDate
	}
	if changed("end-date") {
		p.EndDate = f.endDate
	}
	if changed("tags") {
		p.Tags = f.tags
	}
	if changed("user-id") {
		p.User = nil
		if f.userID != 0 {
			p.User = &program.User{ID: f.userID}
		}
	}
	if changed("cover") {
		data, contentType, err := program.ReadCover(f.coverPath)
		if err != nil {
			return p, fmt.Errorf("reading cover: %w", err)
		}
		p, err = p.WithBlob(program.CoverField, data, contentType)
		if err != nil {
			return p, err
		}
	}
	return p, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid program id %q", arg)
	}
	return id, nil
}

func newListCmd() *cobra.Command {
	var q api.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Programs",
		Long: `Lists Programs. Paging only applies together with --sort, which is how
the backend's pageable contract works; without it every Program is listed.
When no flag is given, ui.pageSize and ui.sort from the configuration apply.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(outputFormat); err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				q.Size = s.cfg.UI.PageSize
			}
			if !cmd.Flags().Changed("sort") {
				q.Sort = s.cfg.UI.Sort
			}

			if err := s.actions.GetEntities(cmd.Context(), q); err != nil {
				return err
			}
			st := s.actions.Store().State()
			return printPage(cmd.OutOrStdout(), outputFormat, api.Page{Items: st.Entities, TotalCount: st.TotalItems})
		},
	}

	cmd.Flags().IntVar(&q.Page, "page", 0, "zero-based page number")
	cmd.Flags().IntVar(&q.Size, "size", 0, "page size")
	cmd.Flags().StringVar(&q.Sort, "sort", "", `sort order, e.g. "id,asc"`)
	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one Program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(outputFormat); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.actions.GetEntity(cmd.Context(), id); err != nil {
				return err
			}
			return printProgram(cmd.OutOrStdout(), outputFormat, s.actions.Store().State().Entity)
		},
	}
}

func newCreateCmd() *cobra.Command {
	var flags programFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Program",
		Long: `Creates a Program. The same rules as in the form apply and are checked
before anything is sent: title (5 to 30 characters), description (up to
300), start and end date, and a cover are required; tags are optional.`,
		Example: `  programctl create --title "Summer school" --description "Two weeks" \
    --start-date 2024-06-01 --end-date 2024-06-14 --cover ./cover.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(outputFormat); err != nil {
				return err
			}
			p, err := flags.apply(cmd, program.Empty())
			if err != nil {
				return err
			}
			if err := program.Validate(p); err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			created, err := s.actions.CreateEntity(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printProgram(cmd.OutOrStdout(), outputFormat, created)
		},
	}

	flags.register(cmd)
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var flags programFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a Program",
		Long: `Fetches the Program, applies the given flags, checks the result with the
form rules and sends the whole Program back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(outputFormat); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.actions.GetEntity(cmd.Context(), id); err != nil {
				return err
			}
			p, err := flags.apply(cmd, s.actions.Store().State().Entity)
			if err != nil {
				return err
			}
			p.ID = id
			if err := program.Validate(p); err != nil {
				return err
			}
			updated, err := s.actions.UpdateEntity(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printProgram(cmd.OutOrStdout(), outputFormat, updated)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPatchCmd() *cobra.Command {
	var flags programFlags

	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change some fields of a Program",
		Long: `Sends only the given flags as a merge patch. Fields that are not given
are left as they are on the backend.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutputFormat(outputFormat); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := flags.apply(cmd, program.Program{ID: id})
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			patched, err := s.actions.PartialUpdate(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printProgram(cmd.OutOrStdout(), outputFormat, patched)
		},
	}

	flags.register(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a Program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.actions.DeleteEntity(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Program %d deleted\n", id)
			return nil
		},
	}
}
