package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"dailyfocus/local-app/src/pkg/cli"
	"dailyfocus/local-app/src/pkg/config"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/ops"
	"dailyfocus/local-app/src/pkg/session"
)

func exportCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export task history as markdown or all data as JSON/YAML",
	}

	var status, dateRange, dir string
	var noSubtasks bool
	markdown := &cobra.Command{
		Use:   "markdown",
		Short: "Write the task history to a markdown file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := model.DefaultExportOptions()
			var err error
			if opts.Status, err = model.ParseExportStatus(status); err != nil {
				return err
			}
			if opts.DateRange, err = model.ParseDateRange(dateRange); err != nil {
				return err
			}
			opts.IncludeSubtasks = !noSubtasks

			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			if dir == "" {
				dir = a.cfg.ExportDir
			}
			path, err := a.data.ExportMarkdownFile(dir, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	markdown.Flags().StringVar(&status, "status", "all", "Tasks to include: all, completed or incomplete")
	markdown.Flags().StringVar(&dateRange, "range", "7", "Days to include: 5, 7, 14, 30 or all")
	markdown.Flags().BoolVar(&noSubtasks, "no-subtasks", false, "Leave subtasks out")
	markdown.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default export_dir)")

	var format string
	data := &cobra.Command{
		Use:   "data <filename>",
		Short: "Write all tasks, topics, history and settings to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.data.DataExport(args[0], format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
			return nil
		},
	}
	data.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")

	cmd.AddCommand(markdown, data)
	return cmd
}

func importCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <filename>",
		Short: "Validate a data file and replace the stored data with it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			if err := a.data.DataImport(args[0], format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")
	return cmd
}

func validateCmd(configPath *string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "validate <filename>",
		Short: "Check a data file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			_, violations, err := a.data.DataValidate(args[0], format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(violations) > 0 {
				for _, v := range violations {
					fmt.Fprintf(out, "  %s\n", v)
				}
				return fmt.Errorf("%s: %d problems found", args[0], len(violations))
			}
			fmt.Fprintf(out, "%s is valid\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default from the file extension)")
	return cmd
}

func rolloverCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Run the day and week rollover checks once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			now := a.data.Now()
			day := a.data.CheckDay(now)
			week := a.data.CheckWeek(now)
			cli.NewRenderer(cmd.OutOrStdout(), false).Render(session.RolloverResult{
				DayDue:       day.Due,
				DayArchived:  day.Archived,
				WeekDue:      week.Due,
				WeekArchived: week.Archived,
			})
			return nil
		},
	}
}

func statsCmd(configPath *string) *cobra.Command {
	var days string
	cmd := &cobra.Command{
		Use:   "stats [tasks|learning]",
		Short: "Show task or learning statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := "tasks"
			if len(args) == 1 {
				kind = args[0]
			}
			a, err := bootstrap(*configPath, false, nil)
			if err != nil {
				return err
			}
			defer a.close()
			r := cli.NewRenderer(cmd.OutOrStdout(), false)

			switch kind {
			case "tasks":
				n := 0
				if days != "all" {
					if n, err = strconv.Atoi(days); err != nil || n < 1 {
						return fmt.Errorf("invalid --days %q", days)
					}
				}
				r.Render(a.data.HistoryManager.TaskStats(n))
			case "learning":
				r.Render(a.data.HistoryManager.LearningStats())
			default:
				return fmt.Errorf("unknown statistics %q, use tasks or learning", kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&days, "days", "7", "Window for task statistics, a number of days or all")
	return cmd
}

func backupCmd(configPath *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory with a checksum manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ConfigLoad(*configPath); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg := config.ConfigGet()
			if dir == "" {
				dir = cfg.BackupDir
			}
			now := time.Now()
			archive := filepath.Join(dir, ops.BackupFilename(now))
			manifest, err := ops.BackupDataDir(cfg.DatabaseDir, archive, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d files to %s\n", len(manifest.Files), archive)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Backup directory (default backup_dir)")
	return cmd
}

func restoreCmd(configPath *string) *cobra.Command {
	var verifyOnly bool
	cmd := &cobra.Command{
		Use:   "restore <archive>",
		Short: "Verify a backup archive and extract it into the data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if verifyOnly {
				manifest, err := ops.VerifyBackup(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s is intact, %d files from %s\n", args[0], len(manifest.Files), manifest.CreatedAt.Format(time.RFC3339))
				return nil
			}
			if err := config.ConfigLoad(*configPath); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg := config.ConfigGet()
			if err := ops.RestoreDataDir(args[0], cfg.DatabaseDir); err != nil {
				return err
			}
			fmt.Fprintf(out, "Restored %s into %s\n", args[0], cfg.DatabaseDir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&verifyOnly, "verify", false, "Only check the archive checksums")
	return cmd
}
