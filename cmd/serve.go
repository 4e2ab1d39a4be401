package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"model-fetcher/core/config"
	"model-fetcher/core/logger"
	"model-fetcher/core/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve <dir>",
	Short: "Serve a downloaded model directory over HTTP",
	Long:  `Starts a small file server on the given directory so fetched artifacts can be inspected or consumed over HTTP.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Start Server
		app := server.New(args[0])
		go func() {
			logg.Info("Serving artifacts",
				zap.String("dir", args[0]),
				zap.String("port", cfg.Server.Port),
			)
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 4. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
