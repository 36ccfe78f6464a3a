package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yourusername/yt-extract-go/internal/app"
	"github.com/yourusername/yt-extract-go/internal/domain"
)

var (
	serverURL    string
	serverConfig string
	noAutoStart  bool
	rootCmd      = &cobra.Command{
		Use:          "yt-extract",
		Short:        "yt-extract CLI - download YouTube videos through the yt-extract server",
		Long:         `A command-line client for the yt-extract HTTP service: download videos, inspect metadata and browse download history.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "Server URL")
	rootCmd.PersistentFlags().StringVar(&serverConfig, "server-config", "", "Config file passed to an auto-started server")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	downloadCmd.Flags().StringP("resolution", "r", "720", "Maximum video height, e.g. 720 or 1080p")
	downloadCmd.Flags().BoolP("subtitles", "s", false, "Also fetch English subtitles")
	historyCmd.Flags().String("status", "", "Filter by status (processing, completed, failed)")
	logsCmd.Flags().String("date", "", "Day to read, YYYY-MM-DD (default: today)")
	logsCmd.Flags().StringP("query", "q", "", "Only show lines containing this text")
	logsCmd.Flags().IntP("limit", "n", 100, "Maximum number of entries")
	configInitCmd.Flags().String("path", "", "Config file to write (default: ~/.yt-extract/config.yaml)")
	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(configCmd)
}

// connect returns a client, starting the server first unless --no-auto-start
func connect() *apiClient {
	client := newAPIClient(serverURL)
	if noAutoStart {
		return client
	}
	if err := ensureServerRunning(client); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return client
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a video at or below a resolution",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolution, _ := cmd.Flags().GetString("resolution")
		subtitles, _ := cmd.Flags().GetBool("subtitles")

		result, err := connect().download(args[0], resolution, subtitles)
		if err != nil {
			return err
		}

		printDownload(cmd.OutOrStdout(), result)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info [url]",
	Short: "Show video metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := connect().videoInfo(args[0])
		if err != nil {
			return err
		}

		pretty, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List past downloads, or show one by ID",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := connect()

		if len(args) == 1 {
			download, err := client.getDownload(args[0])
			if err != nil {
				return err
			}
			printDownloadRecord(cmd.OutOrStdout(), download)
			return nil
		}

		status, _ := cmd.Flags().GetString("status")
		downloads, err := client.listDownloads(status)
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), downloads)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := connect().stats()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Download Statistics:")
		fmt.Fprintf(out, "  Total:      %v\n", stats["total"])
		fmt.Fprintf(out, "  Processing: %v\n", stats["processing"])
		fmt.Fprintf(out, "  Completed:  %v\n", stats["completed"])
		fmt.Fprintf(out, "  Failed:     %v\n", stats["failed"])
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:       "logs [download|error]",
	Short:     "Show the server's download or error event log",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"download", "error"},
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		query, _ := cmd.Flags().GetString("query")
		limit, _ := cmd.Flags().GetInt("limit")

		result, err := connect().logs(args[0], date, query, limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, entry := range result.Entries {
			fmt.Fprintf(out, "%s %-5s %s", stringField(entry, "timestamp"), stringField(entry, "level"), stringField(entry, "message"))
			if fields, ok := entry["fields"].(map[string]interface{}); ok && len(fields) > 0 {
				data, _ := json.Marshal(fields)
				fmt.Fprintf(out, " %s", data)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			path = filepath.Join(home, ".yt-extract", "config.yaml")
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}

		if err := app.SaveConfig(domain.DefaultConfig(), path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
		return nil
	},
}

func printDownload(w io.Writer, result *downloadResponse) {
	fmt.Fprintln(w, result.Message)
	if result.Subtitles != nil {
		fmt.Fprintln(w, "Subtitles:")
		fmt.Fprintln(w, *result.Subtitles)
	}
}

func printHistory(w io.Writer, downloads []map[string]interface{}) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tRES\tSTATUS\tTITLE\tCREATED")
	for _, d := range downloads {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%v\t%s\t%v\n",
			truncate(stringField(d, "id"), 8),
			truncate(stringField(d, "url"), 40),
			d["resolution"],
			d["status"],
			truncate(stringField(d, "title"), 30),
			d["created_at"])
	}
	tw.Flush()
}

func printDownloadRecord(w io.Writer, d map[string]interface{}) {
	fmt.Fprintf(w, "Download Details:\n")
	fmt.Fprintf(w, "  ID:         %s\n", stringField(d, "id"))
	fmt.Fprintf(w, "  URL:        %s\n", stringField(d, "url"))
	fmt.Fprintf(w, "  Resolution: %v\n", d["resolution"])
	fmt.Fprintf(w, "  Status:     %s\n", stringField(d, "status"))
	fmt.Fprintf(w, "  Created:    %s\n", stringField(d, "created_at"))
	if title := stringField(d, "title"); title != "" {
		fmt.Fprintf(w, "  Title:      %s\n", title)
	}
	if file := stringField(d, "file_path"); file != "" {
		fmt.Fprintf(w, "  File:       %s\n", file)
	}
	if msg := stringField(d, "error_message"); msg != "" {
		fmt.Fprintf(w, "  Error:      %s\n", msg)
	}
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
