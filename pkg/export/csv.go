// Package export writes stories to CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/naveego/storyreader/pkg/stories"
	"github.com/pkg/errors"
)

var Header = []string{
	"ID",
	"Title",
	"Description",
	"Status",
	"Priority",
	"Assignee",
	"EstimatedHours",
	"Epic",
	"Tags",
	"AcceptanceCriteria",
}

// ListSeparator joins tags and acceptance criteria inside one cell.
const ListSeparator = "; "

// DefaultFileName returns the name an export started at t is written to.
func DefaultFileName(t time.Time) string {
	return fmt.Sprintf("user_stories_%s.csv", t.Format("20060102_150405"))
}

func Row(s stories.Story) []string {
	return []string{
		s.ID,
		s.Title,
		s.Description,
		s.Status,
		s.Priority,
		s.Assignee,
		strconv.Itoa(s.EstimatedHours),
		s.Epic,
		strings.Join(s.Tags, ListSeparator),
		strings.Join(s.AcceptanceCriteria, ListSeparator),
	}
}

// WriteCSV writes the header and one row per story. Every field is quoted
// and quotes inside a field are doubled.
func WriteCSV(w io.Writer, in []stories.Story) error {
	bw := bufio.NewWriter(w)
	if err := writeRow(bw, Header); err != nil {
		return err
	}
	for _, s := range in {
		if err := writeRow(bw, Row(s)); err != nil {
			return errors.Wrapf(err, "write story %s", s.ID)
		}
	}
	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func quote(field string) string {
	return `"` + strings.Replace(field, `"`, `""`, -1) + `"`
}

// WriteFile exports in to path, creating or truncating it.
func WriteFile(path string, in []stories.Story) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %q", path)
	}
	if err = WriteCSV(f, in); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %q", path)
	}
	return errors.Wrapf(f.Close(), "close %q", path)
}
