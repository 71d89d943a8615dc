package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kyokomi/emoji"
	"github.com/naveego/storyreader/pkg/query"
	"github.com/naveego/storyreader/pkg/stories"
)

const dateFormat = "2006-01-02"

// renderGroups writes stories grouped by epic, with the assignee, estimate
// and tags lines shown only when they have a value.
func renderGroups(w io.Writer, in []stories.Story) {
	fmt.Fprintf(w, "\nFound %d user stories:\n\n", len(in))

	for _, group := range query.GroupByEpic(in) {
		colorHeader.Fprintf(w, "%s Epic: %s\n", emoji.Sprint(":file_folder:"), group.Epic)
		fmt.Fprintln(w, strings.Repeat("-", 50))

		for _, s := range group.Stories {
			fmt.Fprintf(w, "  %s\n", s)
			if s.Assignee != "" {
				fmt.Fprintf(w, "    %s Assignee: %s\n", emoji.Sprint(":bust_in_silhouette:"), s.Assignee)
			}
			if s.EstimatedHours > 0 {
				fmt.Fprintf(w, "    %s Estimated: %d hours\n", emoji.Sprint(":hourglass:"), s.EstimatedHours)
			}
			if len(s.Tags) > 0 {
				fmt.Fprintf(w, "    %s Tags: %s\n", emoji.Sprint(":bookmark:"), strings.Join(s.Tags, ", "))
			}
			fmt.Fprintln(w)
		}
	}
}

func renderDetails(w io.Writer, s stories.Story) {
	colorHeader.Fprintf(w, "\n=== %s: %s ===\n", s.ID, s.Title)
	fmt.Fprintf(w, "Description: %s\n", s.Description)
	fmt.Fprintf(w, "Status: %s\n", s.Status)
	fmt.Fprintf(w, "Priority: %s\n", s.Priority)
	fmt.Fprintf(w, "Assignee: %s\n", s.Assignee)
	fmt.Fprintf(w, "Estimated Hours: %d\n", s.EstimatedHours)
	fmt.Fprintf(w, "Epic: %s\n", s.Epic)
	fmt.Fprintf(w, "Tags: %s\n", strings.Join(s.Tags, ", "))
	fmt.Fprintf(w, "Created: %s\n", formatDate(s.CreatedDate))
	fmt.Fprintf(w, "Last Modified: %s\n", formatDate(s.LastModified))

	fmt.Fprintln(w, "\nAcceptance Criteria:")
	for _, ac := range s.AcceptanceCriteria {
		fmt.Fprintf(w, "  %s %s\n", emoji.Sprint(":heavy_check_mark:"), ac)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

// showStories prints stories in the --output format, or grouped by epic
// when no format was requested.
func showStories(w io.Writer, in stories.Stories) error {
	if format := outputFormat(); format != "" {
		return renderOutput(w, format, in)
	}
	renderGroups(w, in)
	return nil
}
