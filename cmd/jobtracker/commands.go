package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cesargomez89/jobtracker/internal/backup"
	"github.com/cesargomez89/jobtracker/internal/config"
	"github.com/cesargomez89/jobtracker/internal/constants"
	"github.com/cesargomez89/jobtracker/internal/logger"
	"github.com/cesargomez89/jobtracker/internal/storage"
	"github.com/cesargomez89/jobtracker/internal/store"
)

var (
	errNotConfirmed     = errors.New("import not confirmed: pass --yes to replace all data")
	errChecksumMismatch = errors.New("snapshot checksum does not match --sha256")
)

type cliOptions struct {
	dbPath   string
	logLevel string
	envFile  string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "jobtracker",
		Short:        "Back up and restore the job application tracker database",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(opts.envFile)
		},
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database file (defaults to $DB_PATH or "+constants.DefaultDBPath+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "optional .env file to load")

	root.AddCommand(newExportCmd(opts), newImportCmd(opts), newStatsCmd(opts))
	return root
}

// open applies flag overrides to the env config and opens the store. Logs
// go to stderr so stdout stays usable for the document.
func (o *cliOptions) open(cmd *cobra.Command) (*store.DB, *logger.Logger, error) {
	cfg := config.Load()
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func newExportCmd(opts *cliOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of every record as JSON",
		Long: `Writes a snapshot of every record as JSON to stdout, to the file given
with -o, or to a timestamped file inside the directory given with -o.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			exporter := backup.NewExporter(db, store.NewSettingsRepo(db), log)
			var buf bytes.Buffer
			if err := exporter.WriteJSON(cmd.Context(), &buf); err != nil {
				return err
			}

			if output == "" {
				_, err := buf.WriteTo(cmd.OutOrStdout())
				return err
			}

			path, err := storage.ResolveOutput(output, backup.FileName(time.Now()))
			if err != nil {
				return err
			}
			if err := storage.WriteFileAtomic(path, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s (sha256 %s)\n", path, storage.HashBytes(buf.Bytes()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file or directory to write the snapshot to")
	return cmd
}

func newImportCmd(opts *cliOptions) *cobra.Command {
	var (
		dryRun   bool
		yes      bool
		asJSON   bool
		checksum string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with the contents of a snapshot",
		Long:  backup.WarningText,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !dryRun && !yes {
				fmt.Fprintln(cmd.ErrOrStderr(), backup.WarningText)
				return errNotConfirmed
			}

			if checksum != "" {
				ok, err := storage.VerifyFile(args[0], checksum)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", args[0], err)
				}
				if !ok {
					return errChecksumMismatch
				}
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			db, log, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			importer := backup.NewImporter(db, store.NewSettingsRepo(db), log)
			res, err := importer.ImportJSON(ctx, data, backup.ImportOptions{DryRun: dryRun})
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), backup.FailureMessage(err))
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", constants.BackupJSONIndent)
				return enc.Encode(res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and report without changing the database")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm that existing data will be replaced")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&checksum, "sha256", "", "refuse the file unless its sha256 matches")
	return cmd
}

func printResult(w io.Writer, res *backup.Result) {
	if res.DryRun {
		fmt.Fprintln(w, "Dry run: nothing was written.")
	}
	fmt.Fprintf(w, "Employers:     %d\n", res.EmployersImported)
	fmt.Fprintf(w, "Jobs:          %d\n", res.JobsImported)
	fmt.Fprintf(w, "Keywords:      %d\n", res.KeywordsImported)
	fmt.Fprintf(w, "Activities:    %d\n", res.ActivitiesImported)
	fmt.Fprintf(w, "Goals:         %d\n", res.GoalsImported)
	fmt.Fprintf(w, "User keywords: %d\n", res.UserKeywordsImported)
	fmt.Fprintf(w, "Skipped:       %d\n", res.Skipped)
	for _, s := range res.Skips {
		fmt.Fprintf(w, "  %s #%d: %s\n", s.Category, s.OriginalID, s.Reason)
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}

func newStatsCmd(opts *cliOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and the last modification and import times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := backup.NewExporter(db, store.NewSettingsRepo(db), log).Stats(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(w).Encode(stats)
			}
			fmt.Fprintf(w, "Employers:     %d\n", stats.TotalEmployers)
			fmt.Fprintf(w, "Jobs:          %d\n", stats.TotalJobs)
			fmt.Fprintf(w, "Keywords:      %d\n", stats.TotalKeywords)
			fmt.Fprintf(w, "Activities:    %d\n", stats.TotalActivities)
			fmt.Fprintf(w, "Goals:         %d\n", stats.TotalGoals)
			fmt.Fprintf(w, "User keywords: %d\n", stats.TotalUserKeywords)
			fmt.Fprintf(w, "Last modified: %s\n", formatTime(stats.LastModified))
			fmt.Fprintf(w, "Last import:   %s\n", formatTime(stats.LastImportAt))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")
	return cmd
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format(time.RFC1123)
}
