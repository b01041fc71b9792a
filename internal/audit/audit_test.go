package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/catalog"
)

func TestAuditor(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "snapshots")
	auditor := NewAuditor(tempDir)

	t.Run("SaveJSON creates audit directory and saves file", func(t *testing.T) {
		record := catalog.ConfigurationRecord{AnnualGoal: 12, SimultaneousReadingLimit: 2, FavoriteGenre: "Poetry"}

		filename, err := auditor.SaveJSON(record)
		require.NoError(t, err)
		assert.Contains(t, filename, ".json")

		content, err := os.ReadFile(filepath.Join(tempDir, filename))
		require.NoError(t, err)

		var saved catalog.ConfigurationRecord
		require.NoError(t, json.Unmarshal(content, &saved))
		assert.Equal(t, record, saved)
	})

	t.Run("SaveJSON generates unique filenames", func(t *testing.T) {
		data := map[string]string{"key": "value"}

		filename1, err := auditor.SaveJSON(data)
		require.NoError(t, err)
		filename2, err := auditor.SaveJSON(data)
		require.NoError(t, err)

		assert.NotEqual(t, filename1, filename2)
	})

	t.Run("SaveJSON panics on nil auditor", func(t *testing.T) {
		var nilAuditor *Auditor
		assert.Panics(t, func() {
			_, _ = nilAuditor.SaveJSON(map[string]string{"key": "value"})
		})
	})
}
