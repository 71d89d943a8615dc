// Copyright © 2018 NAME HERE <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var docsCmd = addCommand(rootCmd, &cobra.Command{
	Use:     "docs",
	Aliases: []string{"doc"},
	Short:   "Completion and documentation generators.",
})

var docsMarkdownCmd = addCommand(docsCmd, &cobra.Command{
	Use:   "markdown [dir]",
	Short: "Writes the command reference as markdown. The directory defaults to ./docs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			return err
		}
		colorOK.Printf("Wrote command reference to %q.\n", dir)
		return nil
	},
})

var docsBashCmd = addCommand(docsCmd, &cobra.Command{
	Use:   "bash",
	Short: "Writes a bash completion script to stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
})

var docsZshCmd = addCommand(docsCmd, &cobra.Command{
	Use:   "zsh",
	Short: "Writes a zsh completion script to stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
})
