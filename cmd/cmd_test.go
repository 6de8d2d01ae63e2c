package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sectionsnap/internal/analytics"
	"sectionsnap/internal/config"
	"sectionsnap/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		cfgFile = ""
		initForce = false
		statsDB = ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		in, path, fragment string
	}{
		{"tour.md", "tour.md", ""},
		{"tour.md#pricing", "tour.md", "pricing"},
		{"dir/a#b.md#faq", "dir/a#b.md", "faq"},
		{"#only", "#only", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, fragment := splitTarget(tt.in)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.fragment, fragment)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("docs", "views.db"), databasePath(filepath.Join("docs", ".sectionsnap.toml"), "views.db"))
	assert.Equal(t, "/var/views.db", databasePath("docs/.sectionsnap.toml", "/var/views.db"))
	assert.Equal(t, "", databasePath("docs/.sectionsnap.toml", ""))
}

func TestPrintSections(t *testing.T) {
	doc := &domain.Document{
		Path: "tour.md",
		Sections: []domain.Section{
			{ID: "start", Title: "Start", Lines: []string{"## Start"}},
			{ID: "pricing", Title: "Pricing", Lines: []string{"## Pricing", "", "Free."},
				Elements: []domain.Element{{ID: "pricing", ParallaxSpeed: 0.3, AnimateOnScroll: true}}},
		},
	}
	var out bytes.Buffer
	require.NoError(t, printSections(&out, doc))
	assert.Contains(t, out.String(), "#start")
	assert.Contains(t, out.String(), "Pricing")
	assert.Contains(t, out.String(), "pricing parallax 0.3, pricing reveal")

	out.Reset()
	require.NoError(t, printSections(&out, &domain.Document{Path: "empty.md"}))
	assert.Equal(t, "empty.md has no sections\n", out.String())
}

func TestInitConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "init-config", dir)
	require.NoError(t, err)
	path := filepath.Join(dir, config.FileName)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, err = execute(t, "init-config", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init-config", dir, "--force")
	assert.NoError(t, err)
}

func TestStatsReadsRecordedViews(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "views.db")
	db, err := analytics.Open(dbPath)
	require.NoError(t, err)
	store := analytics.NewStore(db)
	require.NoError(t, store.Record(context.Background(), "/docs/tour.md", domain.SectionChangedEvent{Section: 1, SectionID: "features", TotalSections: 3}))
	require.NoError(t, db.Close())

	out, err := execute(t, "stats", "--analytics-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "/docs/tour.md")

	out, err = execute(t, "stats", "--analytics-db", dbPath, "/docs/tour.md")
	require.NoError(t, err)
	assert.Contains(t, out, "features")

	_, err = execute(t, "stats", "--analytics-db", filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorContains(t, err, "no analytics database")
}

func TestSectionsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.md")
	require.NoError(t, os.WriteFile(path, []byte("# Tour\n\n## Start\n\nHi.\n\n## Pricing\n\nFree.\n"), 0644))

	out, err := execute(t, "sections", path+"#pricing")
	require.NoError(t, err)
	assert.Contains(t, out, "Start")
	assert.Contains(t, out, "Pricing")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sectionsnap dev\n", out)
}

func TestLoadOrCreateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)

	cfg, err := loadOrCreateConfig(config.NewConfigService(path), path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
	_, err = os.Stat(path)
	require.NoError(t, err, "defaults are written on first use")

	require.NoError(t, os.WriteFile(path, []byte("[navigator]\nsnap_threshold = 0.3\n"), 0644))
	cfg, err = loadOrCreateConfig(config.NewConfigService(path), path)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.Navigator.SnapThreshold)

	require.NoError(t, os.WriteFile(path, []byte("[navigator]\nsnap_threshold = 3\n"), 0644))
	_, err = loadOrCreateConfig(config.NewConfigService(path), path)
	assert.ErrorContains(t, err, "snap_threshold")
}
