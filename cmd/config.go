package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "config",
	Short: "Commands for working with the configuration.",
})

var configShowCmd = addCommand(configCmd, &cobra.Command{
	Use:   "show",
	Short: "Shows the effective configuration, with secrets masked.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		if c.FromPath != "" {
			colorFaint.Printf("# loaded from %s\n", c.FromPath)
		}
		return printOutputWithDefaultFormat(formatYAML, c.Masked())
	},
})
