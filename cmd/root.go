package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sectionsnap/internal/config"
)

var (
	cfgFile string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "sectionsnap FILE[#section]",
	Short: "Read a markdown document one full-screen section at a time",
	Long: `sectionsnap lays a markdown document out as full-screen sections and
snaps between them with eased transitions. Scroll with the wheel, drag with
the mouse or use the keyboard; esc pauses snapping.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .sectionsnap.toml next to the document)")
	rootCmd.PersistentFlags().StringVar(&logFile, "logfile", "sectionsnap.log", "log file, empty to disable logging")
}

// splitTarget separates "path#fragment" into its parts
func splitTarget(target string) (string, string) {
	if i := strings.LastIndex(target, "#"); i > 0 {
		return target[:i], target[i+1:]
	}
	return target, ""
}

// configPath is the --config flag or the config file in dir
func configPath(dir string) string {
	if cfgFile != "" {
		return cfgFile
	}
	return filepath.Join(dir, config.FileName)
}

// loadConfig reads and validates the config. A missing file yields defaults.
func loadConfig(svc config.ConfigService) (*config.Config, error) {
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadOrCreateConfig loads the config at path, writing one with the default
// settings first when none exists yet.
func loadOrCreateConfig(svc config.ConfigService, path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Creating new config at %s", path)
		if err := svc.Save(config.DefaultConfig()); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	}
	return loadConfig(svc)
}

// databasePath resolves a relative analytics database against the directory
// of the config file.
func databasePath(cfgPath, db string) string {
	if db == "" || filepath.IsAbs(db) {
		return db
	}
	return filepath.Join(filepath.Dir(cfgPath), db)
}
