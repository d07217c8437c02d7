package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/notesapp/notes-manager/internal/client/api"
	"github.com/notesapp/notes-manager/internal/client/notes"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func writeNoteTable(w io.Writer, list []api.Note) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No notes found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tDATE")
	for _, n := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Title, orDash(notes.FormatTags(n.Tags)), formatDate(n.Date))
	}
	return tw.Flush()
}

func writeNote(w io.Writer, n *api.Note) error {
	_, err := fmt.Fprintf(w, "ID:       %s\nTitle:    %s\nTags:     %s\nDate:     %s\nCreated:  %s\nUpdated:  %s\n\n%s\n",
		n.ID,
		n.Title,
		orDash(notes.FormatTags(n.Tags)),
		formatDate(n.Date),
		n.CreatedAt.UTC().Format(timestampLayout),
		n.UpdatedAt.UTC().Format(timestampLayout),
		n.Description,
	)
	return err
}

func writeTagTable(w io.Writer, tags []notes.TagCount) error {
	if len(tags) == 0 {
		_, err := fmt.Fprintln(w, "No tags yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tNOTES")
	for _, t := range tags {
		fmt.Fprintf(tw, "%s\t%d\n", t.Tag, t.Count)
	}
	return tw.Flush()
}

func writeUser(w io.Writer, u *api.User) error {
	_, err := fmt.Fprintf(w, "%s <%s>\nid: %s\n", u.Name, u.Email, u.ID)
	return err
}
