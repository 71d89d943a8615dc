package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/naveego/storyreader/pkg/cli"
	"github.com/naveego/storyreader/pkg/query"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var browseCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "browse",
	Short: "Lists user stories, then lets you explore them from a menu.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cli.IsInteractive() {
			return errors.New("browse needs a terminal; use list, show, filter, search or export instead")
		}

		all, err := loadStories()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			return nil
		}

		renderGroups(os.Stdout, all)
		b := browser{stories: all, out: os.Stdout}
		return b.run()
	},
})

const (
	menuDetails  = "View story details"
	menuStatus   = "Filter by status"
	menuPriority = "Filter by priority"
	menuAssignee = "Filter by assignee"
	menuSearch   = "Search by keyword"
	menuExport   = "Export to CSV"
	menuExit     = "Exit"
)

var menu = []string{menuDetails, menuStatus, menuPriority, menuAssignee, menuSearch, menuExport, menuExit}

type browser struct {
	stories stories.Stories
	out     io.Writer
}

func (b browser) run() error {
	for {
		i, err := cli.Choose("Options", menu)
		if err == cli.ErrUserQuit {
			fmt.Fprintln(b.out, "Goodbye!")
			return nil
		}
		if err != nil {
			return err
		}

		switch menu[i] {
		case menuDetails:
			err = b.details()
		case menuStatus:
			err = b.filter(query.FieldStatus)
		case menuPriority:
			err = b.filter(query.FieldPriority)
		case menuAssignee:
			err = b.filter(query.FieldAssignee)
		case menuSearch:
			err = b.search()
		case menuExport:
			err = exportStories(b.stories, "")
		case menuExit:
			fmt.Fprintln(b.out, "Goodbye!")
			return nil
		}

		switch {
		case err == cli.ErrUserQuit:
			// back to the menu
		case err != nil:
			colorError.Fprintln(b.out, err)
		}
	}
}

func (b browser) details() error {
	items := make([]string, 0, len(b.stories))
	for _, s := range b.stories {
		items = append(items, s.String())
	}
	i, err := cli.Choose("Story", items)
	if err != nil {
		return err
	}
	renderDetails(b.out, b.stories[i])
	return nil
}

func (b browser) filter(field string) error {
	values, err := query.DistinctValues(b.stories, field)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		fmt.Fprintf(b.out, "No stories have a %s.\n", field)
		return nil
	}

	i, err := cli.Choose("Select "+field, values)
	if err != nil {
		return err
	}

	filtered, err := query.FilterByField(b.stories, field, values[i])
	if err != nil {
		return err
	}
	colorHeader.Fprintf(b.out, "\nStories with %s '%s':\n", field, values[i])
	renderGroups(b.out, filtered)
	return nil
}

func (b browser) search() error {
	keyword, err := cli.RequestStringFromUser("Enter search keyword")
	if err != nil {
		return err
	}
	if strings.TrimSpace(keyword) == "" {
		fmt.Fprintln(b.out, "No keyword provided.")
		return nil
	}
	colorHeader.Fprintf(b.out, "\nStories containing '%s':\n", keyword)
	renderGroups(b.out, query.Search(b.stories, keyword))
	return nil
}
