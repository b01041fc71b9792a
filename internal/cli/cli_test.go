package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/config"
)

type runnable interface {
	ParseFlags(args []string) error
	Run() error
	use(cfg *config.Config, out io.Writer)
}

func (b *baseCommand) use(cfg *config.Config, out io.Writer) {
	b.Config = cfg
	b.Out = out
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Database: config.Database{Path: filepath.Join(dir, "shelf.db"), LogLevel: "silent"},
		Storage:  config.Storage{Backend: config.StorageBackendSQLite, JSONPath: filepath.Join(dir, "catalog.json")},
		Export:   config.Export{Dir: filepath.Join(dir, "export")},
		Audit:    config.Audit{Dir: filepath.Join(dir, "audit"), RetentionDays: 90},
		Reports:  config.Reports{GoalPace: "daily", TopN: 5},
	}
}

func execute(t *testing.T, cfg *config.Config, cmd runnable, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.use(cfg, &out)
	if err := cmd.ParseFlags(args); err != nil {
		return out.String(), err
	}
	err := cmd.Run()
	return out.String(), err
}

func mustExecute(t *testing.T, cfg *config.Config, cmd runnable, args ...string) string {
	t.Helper()
	out, err := execute(t, cfg, cmd, args...)
	require.NoError(t, err)
	return out
}

func addBook(t *testing.T, cfg *config.Config, title, author, year string) {
	t.Helper()
	mustExecute(t, cfg, NewAddCommand(), "-title", title, "-author", author, "-year", year, "-pages", "300")
}

func clearPreferenceEnv(t *testing.T) {
	for _, key := range []string{"ANNUAL_GOAL", "SIMULTANEOUS_READING_LIMIT", "FAVORITE_GENRE", "OWNER_NAME", "OWNER_EMAIL"} {
		t.Setenv(key, "")
	}
}

func TestReadingFlow(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)

	out := mustExecute(t, cfg, NewAddCommand(), "-title", "Dune", "-author", "Frank Herbert", "-year", "1965", "-pages", "412")
	assert.Contains(t, out, "Added #1: Dune by Frank Herbert")

	mustExecute(t, cfg, NewStartCommand(), "-id", "1")
	mustExecute(t, cfg, NewFinishCommand(), "-id", "1")
	out = mustExecute(t, cfg, NewRateCommand(), "-id", "1", "-value", "9")
	assert.Contains(t, out, "Rated #1: 9.0")

	out = mustExecute(t, cfg, NewListCommand(), "-status", "read")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "rated 9.0")

	out = mustExecute(t, cfg, NewReportCommand(), "-type", "top")
	assert.Contains(t, out, "TOP RATED")
	assert.Contains(t, out, "Dune by Frank Herbert (1965) 9/10")

	out = mustExecute(t, cfg, NewShowCommand(), "-id", "1")
	assert.Contains(t, out, "Status:     READ")
	assert.Contains(t, out, "Finished:   "+catalog.FormatDate(catalog.Today()))

	out = mustExecute(t, cfg, NewHistoryCommand(), "-id", "1")
	assert.Contains(t, out, "Showing 4 of 4 events")

	out = mustExecute(t, cfg, NewHistoryCommand(), "-since", "1h")
	assert.Contains(t, out, "rated")

	out = mustExecute(t, cfg, NewHistoryCommand(), "-event", "1")
	assert.Contains(t, out, "Type:        register")

	_, err := execute(t, cfg, NewHistoryCommand(), "-event", "999")
	assert.Error(t, err)
}

func TestLifecycleErrors(t *testing.T) {
	clearPreferenceEnv(t)

	t.Run("rating an unread publication", func(t *testing.T) {
		cfg := testConfig(t)
		addBook(t, cfg, "Dune", "Frank Herbert", "1965")

		_, err := execute(t, cfg, NewRateCommand(), "-id", "1", "-value", "5")
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrState)
		assert.Contains(t, err.Error(), "invalid state")
	})

	t.Run("rating out of range", func(t *testing.T) {
		cfg := testConfig(t)
		addBook(t, cfg, "Dune", "Frank Herbert", "1965")
		mustExecute(t, cfg, NewStartCommand(), "-id", "1")
		mustExecute(t, cfg, NewFinishCommand(), "-id", "1")

		_, err := execute(t, cfg, NewRateCommand(), "-id", "1", "-value", "11")
		assert.ErrorIs(t, err, catalog.ErrValidation)
	})

	t.Run("reading limit", func(t *testing.T) {
		cfg := testConfig(t)
		mustExecute(t, cfg, NewInitCommand(), "-limit", "1")
		addBook(t, cfg, "Dune", "Frank Herbert", "1965")
		addBook(t, cfg, "Emma", "Jane Austen", "1815")

		mustExecute(t, cfg, NewStartCommand(), "-id", "1")
		_, err := execute(t, cfg, NewStartCommand(), "-id", "2")
		assert.ErrorIs(t, err, catalog.ErrLimitExceeded)
	})

	t.Run("unknown publication", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := execute(t, cfg, NewFinishCommand(), "-id", "42")
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		cfg := testConfig(t)
		addBook(t, cfg, "Dune", "Frank Herbert", "1965")
		_, err := execute(t, cfg, NewAddCommand(), "-id", "1", "-title", "Emma", "-year", "1815", "-pages", "10")
		assert.ErrorIs(t, err, catalog.ErrDuplicate)
	})
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		cmd  runnable
		args []string
	}{
		{"add without title", NewAddCommand(), []string{"-year", "1965"}},
		{"add unknown kind", NewAddCommand(), []string{"-title", "Dune", "-kind", "scroll"}},
		{"start without id", NewStartCommand(), nil},
		{"rate without value", NewRateCommand(), []string{"-id", "1"}},
		{"search with both terms", NewSearchCommand(), []string{"-author", "a", "-title", "b"}},
		{"search without terms", NewSearchCommand(), nil},
		{"list with unknown sort", NewListCommand(), []string{"-sort", "rating"}},
		{"report with unknown type", NewReportCommand(), []string{"-type", "weekly"}},
		{"annotate without action", NewAnnotateCommand(), nil},
		{"annotate add without text", NewAnnotateCommand(), []string{"add", "-id", "1"}},
		{"settings unknown action", NewSettingsCommand(), []string{"reset"}},
		{"settings import without file", NewSettingsCommand(), []string{"import"}},
		{"init with half an owner", NewInitCommand(), []string{"-owner-name", "Ann"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cmd.ParseFlags(tt.args))
		})
	}
}

func TestSearchAndPeriod(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)
	addBook(t, cfg, "Dune", "Frank Herbert", "1965")
	addBook(t, cfg, "Emma", "Jane Austen", "1815")
	mustExecute(t, cfg, NewStartCommand(), "-id", "2")
	mustExecute(t, cfg, NewFinishCommand(), "-id", "2")

	out := mustExecute(t, cfg, NewSearchCommand(), "-author", "austen")
	assert.Contains(t, out, "Emma")
	assert.NotContains(t, out, "Dune")

	out = mustExecute(t, cfg, NewListCommand(), "-sort", "year")
	assert.Less(t, bytes.Index([]byte(out), []byte("Emma")), bytes.Index([]byte(out), []byte("Dune")))

	today := catalog.FormatDate(catalog.Today())
	out = mustExecute(t, cfg, NewListCommand(), "-finished", today+":"+today)
	assert.Contains(t, out, "Emma")
	assert.Contains(t, out, "1 publications")

	_, err := execute(t, cfg, NewListCommand(), "-finished", "2024-01-01")
	assert.Error(t, err)
}

func TestAnnotate(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)
	addBook(t, cfg, "Dune", "Frank Herbert", "1965")

	out := mustExecute(t, cfg, NewAnnotateCommand(), "add", "-id", "1", "-text", "Fear is the mind-killer", "-excerpt", "Litany")
	assert.Contains(t, out, "Added annotation")

	out = mustExecute(t, cfg, NewAnnotateCommand(), "search", "-term", "MIND")
	assert.Contains(t, out, "Fear is the mind-killer")

	out = mustExecute(t, cfg, NewAnnotateCommand(), "list", "-id", "1")
	assert.Contains(t, out, "#1 Dune")

	_, err := execute(t, cfg, NewAnnotateCommand(), "remove", "-id", "1", "-annotation", "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestSettings(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)

	out := mustExecute(t, cfg, NewSettingsCommand(), "show")
	assert.Contains(t, out, "(default)")

	mustExecute(t, cfg, NewSettingsCommand(), "set", "-goal", "12", "-genre", "Science Fiction")
	out = mustExecute(t, cfg, NewSettingsCommand(), "show", "-json")
	assert.Contains(t, out, `"annual_goal": 12`)
	assert.Contains(t, out, `"annual_goal_source": "database"`)

	_, err := execute(t, cfg, NewSettingsCommand(), "set", "-goal", "-3")
	assert.ErrorIs(t, err, catalog.ErrValidation)

	file := filepath.Join(t.TempDir(), "prefs.json")
	mustExecute(t, cfg, NewSettingsCommand(), "export", "-file", file)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Science Fiction")

	out = mustExecute(t, cfg, NewSettingsCommand(), "owner", "-name", "Ann", "-email", "ann@example.com")
	assert.Contains(t, out, "Ann")

	out = mustExecute(t, cfg, NewSettingsCommand(), "schedule", "-enabled", "true", "-cron", "0 6 * * *")
	assert.Contains(t, out, "Daily at 06:00")

	_, err = execute(t, cfg, NewSettingsCommand(), "schedule", "-cron", "every day")
	assert.Error(t, err)

	mustExecute(t, cfg, NewSettingsCommand(), "clear")
	out = mustExecute(t, cfg, NewSettingsCommand(), "show", "-json")
	assert.Contains(t, out, `"annual_goal_source": "default"`)
	assert.NotContains(t, out, "ann@example.com")
}

func TestExportAndVerify(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)
	addBook(t, cfg, "Dune", "Frank Herbert", "1965")
	mustExecute(t, cfg, NewAddCommand(), "-title", "Emma", "-year", "1815", "-pages", "10",
		"-file", filepath.Join(t.TempDir(), "emma.epub"))

	out := mustExecute(t, cfg, NewExportCommand())
	assert.Contains(t, out, "Exported 2 publications")
	assert.FileExists(t, filepath.Join(cfg.Export.Dir, "index.md"))
	assert.FileExists(t, filepath.Join(cfg.Export.Dir, "reports.md"))

	out, err := execute(t, cfg, NewVerifyFilesCommand())
	require.Error(t, err)
	assert.Contains(t, out, "MISSING")
	assert.Contains(t, out, "1 checked, 1 missing")

	out = mustExecute(t, cfg, NewHistoryCommand(), "-type", "export")
	assert.Contains(t, out, "Showing 1 of 1 events")
}

func TestReportFull(t *testing.T) {
	clearPreferenceEnv(t)
	cfg := testConfig(t)
	mustExecute(t, cfg, NewInitCommand(), "-goal", "4", "-owner-name", "Ann", "-owner-email", "ann@example.com")
	addBook(t, cfg, "Dune", "Frank Herbert", "1965")

	out := mustExecute(t, cfg, NewReportCommand(), "-type", "full")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "CATALOG STATUS")
	assert.Contains(t, out, "ANNUAL GOAL")
	assert.Contains(t, out, "RATINGS REPORT")

	out = mustExecute(t, cfg, NewReportCommand(), "-type", "goal", "-json")
	assert.Contains(t, out, `"goal": 4`)
}
