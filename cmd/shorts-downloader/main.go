package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/sniperz/shorts-downloader/internal/config"
	"github.com/sniperz/shorts-downloader/internal/log"
)

var (
	settings *config.Settings

	flagVerbose      bool   // value of --verbose flag
	flagChannelsFile string // value of --channels flag
	flagDownloadDir  string // value of --dir flag
	flagCSVPath      string // value of --csv flag
	flagFormat       string // value of --format flag
	flagFromCSV      string // value of --from flag
)

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagChannelsFile, "channels", "", "file with one channel URL per line - default is the built-in channel list")
	rootCmd.PersistentFlags().StringVar(&flagCSVPath, "csv", "", "write the collected video list to this CSV file")

	for _, c := range []*cobra.Command{runCmd, downloadCmd} {
		c.Flags().StringVar(&flagDownloadDir, "dir", "", "destination directory - default is "+config.EnvDownloadDir+" or ~/Downloads")
		c.Flags().StringVar(&flagFormat, "format", "", "yt-dlp format selector")
	}
	downloadCmd.Flags().StringVar(&flagFromCSV, "from", "", "CSV file produced by a previous scrape (required)")
	_ = downloadCmd.MarkFlagRequired("from")

	// never print messages
	rootCmd.SilenceErrors = true

	// load .env + environment, setup logging
	rootCmd.PersistentPreRun = initApp

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("shorts-downloader failed", "err", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "shorts-downloader",
	Short:        "Bulk downloader for YouTube Shorts channels",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run scrapes the channel list and downloads every discovered short",
	RunE:  doRun,
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "scrape collects the video list without downloading anything",
	RunE:  doScrape,
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "download fetches every video from a previously scraped CSV",
	RunE:  doDownload,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version prints build information",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("shorts-downloader: version info not available")
			return
		}

		fmt.Printf("shorts-downloader: %s\n", info.Main.Version)
		fmt.Printf("go:                %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Printf("commit: %s\n", s.Value)
			case "vcs.time":
				fmt.Printf("date:   %s\n", s.Value)
			}
		}
	},
}

func initApp(cmd *cobra.Command, _ []string) {
	slog.SetDefault(log.New(flagVerbose))

	settings = config.Load()
	if flagDownloadDir != "" {
		settings.DownloadDir = flagDownloadDir
	}
	if flagFormat != "" {
		settings.Format = flagFormat
	}

	slog.Debug("configuration loaded",
		"dir", settings.DownloadDir,
		"fetchWorkers", settings.FetchWorkers,
		"fetchTimeout", settings.FetchTimeout,
	)
}
