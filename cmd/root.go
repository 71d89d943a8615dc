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
	"fmt"
	"os"
	"strings"

	"github.com/naveego/storyreader/pkg"
	"github.com/naveego/storyreader/pkg/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version string
var timestamp string
var commit string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "storyreader",
	Short:         "Reads user stories from story files or issues.",
	SilenceErrors: true,
	Version: fmt.Sprintf(`Version: %s
Timestamp: %s
Commit: %s
`, version, timestamp, commit),
	Long: `Reads user stories from the JSON story files in a GitHub repository,
or from issues written with the user story template in GitHub or Jira,
and lets you browse, filter, search and export them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {

		viper.RegisterAlias("debug", "verbose")
		viper.BindPFlags(cmd.Flags())
		viper.BindPFlags(cmd.PersistentFlags())

		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
		logrus.SetOutput(os.Stderr)

		pkg.Log = logrus.NewEntry(logrus.StandardLogger())

		verbose := viper.GetBool(ArgGlobalVerbose)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
			pkg.Log.Debug("Logging at debug level.")
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}

		if logFile := viper.GetString(ArgGlobalLogFile); logFile != "" {
			if err := pkg.AddLogFileHook(logrus.StandardLogger(), logFile); err != nil {
				return err
			}
		}

		pkg.Log = pkg.Log.WithField("@command", cmd.Name())
		cmd.SilenceUsage = true

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		switch e := errors.Cause(err).(type) {
		case util.HandledError:
			fmt.Fprint(os.Stderr, e.Error())
		default:
			colorError.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

const (
	ArgGlobalVerbose     = "verbose"
	ArgGlobalConfigFile  = "config-file"
	ArgGlobalEnvFile     = "env-file"
	ArgGlobalOutput      = "output"
	ArgGlobalLogFile     = "log-file"
	ArgGlobalSource      = "source"
	ArgGlobalPath        = "path"
	ArgGlobalTracker     = "tracker"
	ArgGlobalConcurrency = "concurrency"
	ArgGlobalTimeout     = "timeout"
)

func init() {
	rootCmd.PersistentFlags().String(ArgGlobalConfigFile, "storyreader.yaml", "Config file for storyreader. You can also set STORYREADER_CONFIG.")
	rootCmd.PersistentFlags().String(ArgGlobalEnvFile, ".env", "File of environment variables to load before reading the environment.")
	rootCmd.PersistentFlags().StringP(ArgGlobalOutput, "o", "", "Output format. Options are `table`, `json` or `yaml`. Without it, stories are grouped by epic.")
	rootCmd.PersistentFlags().Bool(ArgGlobalVerbose, false, "Enable verbose logging.")
	rootCmd.PersistentFlags().String(ArgGlobalLogFile, "", "Also write logs to this file, rotated when it grows.")
	rootCmd.PersistentFlags().StringP(ArgGlobalSource, "s", "", "Where to read stories from: `files` or `issues`. Defaults to the config file, then files.")
	rootCmd.PersistentFlags().String(ArgGlobalPath, "", "Directory in the repository holding the story files (default user-stories).")
	rootCmd.PersistentFlags().String(ArgGlobalTracker, "", "Issue tracker to read issues from: `github` or `jira`.")
	rootCmd.PersistentFlags().Int(ArgGlobalConcurrency, 0, "Number of story files fetched at once (default 4).")
	rootCmd.PersistentFlags().Duration(ArgGlobalTimeout, 0, "Timeout for each request to GitHub or Jira (default 30s).")

	viper.RegisterAlias("debug", "verbose")
	viper.BindPFlags(rootCmd.PersistentFlags())

	viper.SetEnvPrefix("STORYREADER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.BindEnv(ArgGlobalConfigFile, "STORYREADER_CONFIG")
}
