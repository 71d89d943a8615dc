package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/naveego/storyreader/pkg/query"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var listCmd = addCommand(rootCmd, &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Lists user stories grouped by epic.",
	Example: `  storyreader list
  storyreader list --source issues -o table
  storyreader list --where priority==High --where status!=Closed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := loadStories()
		if err != nil {
			return err
		}

		filtered, err := query.Where(all, viper.GetStringSlice(ArgWhere)...)
		if err != nil {
			return err
		}

		return showStories(os.Stdout, filtered)
	},
}, withWhereFlag)

var showCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "show {id}",
	Short: "Shows the details of one user story.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := loadStories()
		if err != nil {
			return err
		}

		story, ok := query.FindByID(all, args[0])
		if !ok {
			return errors.Wrapf(errNoSuchStory, "%q", args[0])
		}

		if format := outputFormat(); format == formatTable {
			return renderOutput(os.Stdout, format, stories.Stories{story})
		} else if format != "" {
			return renderOutput(os.Stdout, format, story)
		}
		renderDetails(os.Stdout, story)
		return nil
	},
})

var filterCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "filter {status|priority|assignee} [value]",
	Short: "Lists the user stories with an exact field value.",
	Long: `Lists the user stories whose status, priority or assignee equals the value.
Without a value, lists the values you can choose from.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := args[0]

		all, err := loadStories()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			values, err := query.DistinctValues(all, field)
			if err != nil {
				return err
			}
			colorHeader.Printf("Available %s values:\n", strings.ToLower(field))
			for i, v := range values {
				fmt.Printf("%d. %s\n", i+1, v)
			}
			return nil
		}

		filtered, err := query.FilterByField(all, field, args[1])
		if err != nil {
			return err
		}
		colorHeader.Printf("\nStories with %s '%s':\n", strings.ToLower(field), args[1])
		return showStories(os.Stdout, filtered)
	},
})

var searchCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "search {keyword}",
	Short: "Lists the user stories mentioning a keyword.",
	Long: `Lists the user stories whose title, description, acceptance criteria
or tags contain the keyword, ignoring case.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword := strings.Join(args, " ")
		if strings.TrimSpace(keyword) == "" {
			return errors.New("no keyword provided")
		}

		all, err := loadStories()
		if err != nil {
			return err
		}

		colorHeader.Printf("\nStories containing '%s':\n", keyword)
		return showStories(os.Stdout, query.Search(all, keyword))
	},
})

var epicsCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "epics",
	Short: "Lists the epics and how many user stories each has.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := loadStories()
		if err != nil {
			return err
		}
		return printOutput(newEpicTable(query.GroupByEpic(all)))
	},
})

type epicRow struct {
	Epic     string `json:"epic" yaml:"epic"`
	Stories  int    `json:"stories" yaml:"stories"`
	Open     int    `json:"open" yaml:"open"`
	Estimate int    `json:"estimatedHours" yaml:"estimatedHours"`
}

type epicTable []epicRow

func newEpicTable(groups []query.EpicGroup) epicTable {
	out := epicTable{}
	for _, g := range groups {
		row := epicRow{Epic: g.Epic, Stories: len(g.Stories)}
		for _, s := range g.Stories {
			if s.Status != stories.StatusClosed {
				row.Open++
			}
			row.Estimate += s.EstimatedHours
		}
		out = append(out, row)
	}
	return out
}

func (e epicTable) Headers() []string {
	return []string{"Epic", "Stories", "Open", "Estimated Hours"}
}

func (e epicTable) Rows() [][]string {
	var out [][]string
	for _, r := range e {
		out = append(out, []string{r.Epic, fmt.Sprint(r.Stories), fmt.Sprint(r.Open), fmt.Sprint(r.Estimate)})
	}
	return out
}
