package cmd

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/naveego/storyreader/pkg"
	"github.com/naveego/storyreader/pkg/ingest"
	"github.com/naveego/storyreader/pkg/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const ArgServeAddr = "addr"

var serveCmd = addCommand(rootCmd, &cobra.Command{
	Use:   "serve",
	Short: "Serves user stories over a read-only JSON API.",
	Long: `Loads user stories once and serves them at:

  GET  /api/health
  GET  /api/stories?status=&priority=&assignee=&q=&where=
  GET  /api/stories/{id}
  GET  /api/epics
  GET  /api/report
  POST /api/refresh   (loads the stories again)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		initial, err := s.load(ctx)
		if err != nil {
			return err
		}

		if !viper.GetBool(ArgGlobalVerbose) {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := server.New(initial, func(ctx context.Context) (ingest.Result, error) {
			return s.load(ctx)
		}, pkg.Log)

		return srv.ListenAndServe(ctx, viper.GetString(ArgServeAddr))
	},
}, func(cmd *cobra.Command) {
	cmd.Flags().String(ArgServeAddr, ":8080", "Address to listen on.")
})
