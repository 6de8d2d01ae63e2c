package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"sectionsnap/internal/analytics"
	"sectionsnap/internal/config"
)

var statsDB string

var statsCmd = &cobra.Command{
	Use:   "stats [FILE]",
	Short: "Show which sections were viewed",
	Long: `Reads the analytics database written by the viewer. Without FILE it lists
every recorded document; with FILE it counts the views of each section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath := configPath(".")
		cfg, err := loadConfig(config.NewConfigService(cfgPath))
		if err != nil {
			return err
		}
		dbPath := databasePath(cfgPath, cfg.Analytics.Database)
		if statsDB != "" {
			dbPath = statsDB
		}
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("no analytics database at %s", dbPath)
		}

		db, err := analytics.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		store := analytics.NewStore(db)

		if len(args) == 0 {
			return printDocuments(cmd.Context(), cmd.OutOrStdout(), store)
		}
		absPath, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		return printReport(cmd.Context(), cmd.OutOrStdout(), store, absPath)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsDB, "analytics-db", "", "database to read (default from config)")
	rootCmd.AddCommand(statsCmd)
}

func printDocuments(ctx context.Context, w io.Writer, store *analytics.Store) error {
	docs, err := store.Documents(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No views recorded yet")
		return err
	}
	t := newTable("Document", "Views", "Sessions")
	for _, d := range docs {
		t.Row(d.Document, strconv.Itoa(d.Views), strconv.Itoa(d.Sessions))
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func printReport(ctx context.Context, w io.Writer, store *analytics.Store, document string) error {
	report, err := store.Report(ctx, document)
	if err != nil {
		return err
	}
	if len(report) == 0 {
		_, err := fmt.Fprintf(w, "No views recorded for %s\n", document)
		return err
	}
	t := newTable("#", "ID", "Views", "Last viewed")
	for _, c := range report {
		t.Row(strconv.Itoa(c.Section+1), c.SectionID, strconv.Itoa(c.Views), c.LastViewed.Local().Format("2006-01-02 15:04"))
	}
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
