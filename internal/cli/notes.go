package cli

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/notesapp/notes-manager/internal/client/api"
	"github.com/notesapp/notes-manager/internal/client/notes"
)

func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var search, tag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your notes",
		Long: `List your notes in creation order.

--search keeps notes whose title contains the text, ignoring case.
--tag keeps notes carrying exactly that tag. Both filters run locally
over the full list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			list, err := a.client.ListNotes(cmd.Context())
			if err != nil {
				return a.fail("list notes", err)
			}
			list = notes.Filter(list, search, tag)
			a.out.VerboseLog("%d note(s) after filtering", len(list))

			return a.out.Success(list, func(w io.Writer) error { return writeNoteTable(w, list) })
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive title filter")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "exact tag filter")

	return cmd
}

func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var title, description, tags, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a note",
		Long: `Create a note and print the refreshed list.

Tags are comma separated ("home, errand"). The date is YYYY-MM-DD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkDate(date); err != nil {
				return err
			}

			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			created, err := a.client.CreateNote(cmd.Context(), api.NoteInput{
				Title:       title,
				Description: description,
				Tags:        notes.ParseTags(tags),
				Date:        date,
			})
			if err != nil {
				return a.fail("create note", err)
			}
			a.out.Status("Created note %s.", created.ID)

			return a.refreshList(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "note body (required)")
	cmd.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&date, "date", "", "calendar date, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			n, err := a.client.GetNote(cmd.Context(), args[0])
			if err != nil {
				return a.fail("show note", err)
			}
			return a.out.Success(n, func(w io.Writer) error { return writeNote(w, n) })
		},
	}
}

func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		title, description, tags, date string
		clearDate                      bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a note",
		Long: `Change fields of a note and print the refreshed list.

Only the flags you pass are sent; everything else is kept. --tags ""
removes all tags and --clear-date removes the date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("date") && flags.Changed("clear-date") {
				return NewExitError(ExitCommandError, "--date and --clear-date are mutually exclusive")
			}

			var patch api.NotePatch
			if flags.Changed("title") {
				patch.Title = &title
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if flags.Changed("tags") {
				parsed := notes.ParseTags(tags)
				patch.Tags = &parsed
			}
			if flags.Changed("date") {
				if err := checkDate(date); err != nil {
					return err
				}
				patch.Date = &date
			}
			if clearDate {
				empty := ""
				patch.Date = &empty
			}
			if patch.Empty() {
				return NewExitError(ExitCommandError, "nothing to change; pass at least one of --title, --description, --tags, --date, --clear-date")
			}

			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			updated, err := a.client.UpdateNote(cmd.Context(), args[0], patch)
			if err != nil {
				return a.fail("edit note", err)
			}
			a.out.Status("Updated note %s.", updated.ID)

			return a.refreshList(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new body")
	cmd.Flags().StringVar(&tags, "tags", "", "replace tags (comma-separated)")
	cmd.Flags().StringVar(&date, "date", "", "new calendar date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearDate, "clear-date", false, "remove the date")

	return cmd
}

func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			if err := a.client.DeleteNote(cmd.Context(), args[0]); err != nil {
				return a.fail("delete note", err)
			}
			a.out.Status("Deleted note %s.", args[0])

			return a.refreshList(cmd.Context())
		},
	}
}

func NewTagsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List the tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}
			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			list, err := a.client.ListNotes(cmd.Context())
			if err != nil {
				return a.fail("list notes", err)
			}
			tags := notes.AllTags(list)
			return a.out.Success(tags, func(w io.Writer) error { return writeTagTable(w, tags) })
		},
	}
}

func checkDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return NewExitError(ExitCommandError, "date must be YYYY-MM-DD, got "+s)
	}
	return nil
}
