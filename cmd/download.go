package cmd

import (
	"log"

	"model-fetcher/core/config"
	"model-fetcher/core/logger"
	"model-fetcher/core/storage"
	"model-fetcher/core/storage/azure"
	"model-fetcher/core/storage/gcs"
	"model-fetcher/core/storage/local"
	"model-fetcher/core/storage/s3"
	"model-fetcher/core/storage/web"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:   "download <uri> <dest>",
	Short: "Download model artifacts to a local directory",
	Long: `Downloads everything under the given storage URI into the destination
directory, preserving the relative structure of the remote objects.

Supported URIs:
  https://<account>.blob.core.windows.net/<container>[/prefix]
  s3://<bucket>[/prefix]
  gs://<bucket>[/prefix]
  file:///<path>
  http(s)://<host>/<file>  (archives are unpacked)`,
	Args: cobra.ExactArgs(2),
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

		// 3. Build the provider dispatcher. The azure provider must come
		// before the generic web provider, which claims any https URI.
		fsys := afero.NewOsFs()
		dispatcher := storage.NewDispatcher(logg)
		dispatcher.Register(azure.NewProvider(cfg.Azure, fsys, logg))

		s3Provider, err := s3.NewProvider(cfg.S3, fsys, logg)
		if err != nil {
			logg.Fatal("Failed to create s3 provider", zap.Error(err))
		}
		dispatcher.Register(s3Provider)

		dispatcher.Register(gcs.NewProvider(cfg.GCS, fsys, logg))
		dispatcher.Register(local.NewProvider(fsys, logg))
		dispatcher.Register(web.NewProvider(cfg.HTTP, fsys, logg))

		// 4. Run the download
		if err := dispatcher.Download(cmd.Context(), args[0], args[1]); err != nil {
			logg.Fatal("Download failed", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(downloadCmd)
}
