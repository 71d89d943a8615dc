package cmd

import (
	"path/filepath"
	"time"

	"github.com/naveego/storyreader/pkg/export"
	"github.com/naveego/storyreader/pkg/query"
	"github.com/naveego/storyreader/pkg/stories"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "export [file]",
	Short: "Exports user stories to a CSV file.",
	Long: `Exports user stories to a CSV file. Without a file name the stories are written to
user_stories_YYYYMMDD_HHMMSS.csv in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := loadStories()
		if err != nil {
			return err
		}

		filtered, err := query.Where(all, viper.GetStringSlice(ArgWhere)...)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return exportStories(filtered, path)
	},
}, withWhereFlag)

func exportStories(in stories.Stories, path string) error {
	if path == "" {
		path = export.DefaultFileName(time.Now())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err = export.WriteFile(abs, in); err != nil {
		return err
	}
	colorOK.Printf("User stories exported to: %s\n", abs)
	return nil
}
