package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/shelf/internal/catalog"
)

type fakeSettings struct {
	cfg     *catalog.Configuration
	owner   *catalog.User
	status  string
	message string
}

func (f *fakeSettings) GetConfiguration() *catalog.Configuration { return f.cfg }

func (f *fakeSettings) GetOwner() (catalog.User, error) {
	if f.owner == nil {
		return catalog.User{}, os.ErrNotExist
	}
	return *f.owner, nil
}

func (f *fakeSettings) SetExportStatus(status, message string) error {
	f.status, f.message = status, message
	return nil
}

type fakeMaintenanceAudit struct {
	exports  int
	verifies int
	failed   bool
}

func (f *fakeMaintenanceAudit) LogExport(_ string, _ int, err error) {
	f.exports++
	f.failed = err != nil
}

func (f *fakeMaintenanceAudit) LogVerify(_ string, _, _ int, err error) {
	f.verifies++
	f.failed = err != nil
}

func seededStore(t *testing.T, filePath string) *memoryStore {
	t.Helper()
	c := catalog.NewCollection()
	p, err := catalog.NewBook(catalog.Details{
		ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965, NumberOfPages: 412, FilePath: filePath,
	}, "", 0)
	require.NoError(t, err)
	require.NoError(t, c.Register(p))
	return &memoryStore{record: c.Record()}
}

func TestMaintenanceService_Export(t *testing.T) {
	t.Run("writes files and records success", func(t *testing.T) {
		owner, err := catalog.NewUser("Ada", "ada@example.com")
		require.NoError(t, err)
		settings := &fakeSettings{cfg: catalog.DefaultConfiguration(), owner: &owner}
		audit := &fakeMaintenanceAudit{}
		svc := NewMaintenanceService(seededStore(t, ""), settings, audit, nil)
		dir := t.TempDir()

		result, err := svc.Export(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, 1, result.PublicationsProcessed)
		assert.Equal(t, 3, result.FilesWritten)
		assert.Equal(t, ExportStatusSuccess, settings.status)
		assert.Equal(t, "1 publications, 0 annotations, 3 files", settings.message)
		assert.Equal(t, 1, audit.exports)
		assert.False(t, audit.failed)

		reports, err := os.ReadFile(filepath.Join(dir, "reports.md"))
		require.NoError(t, err)
		assert.Contains(t, string(reports), "Owner: Ada <ada@example.com>")
	})

	t.Run("missing directory records failure", func(t *testing.T) {
		settings := &fakeSettings{cfg: catalog.DefaultConfiguration()}
		audit := &fakeMaintenanceAudit{}
		svc := NewMaintenanceService(seededStore(t, ""), settings, audit, nil)

		_, err := svc.Export(context.Background(), "")
		assert.Error(t, err)
		assert.Equal(t, ExportStatusFailed, settings.status)
		assert.True(t, audit.failed)
	})
}

func TestMaintenanceService_VerifyFiles(t *testing.T) {
	audit := &fakeMaintenanceAudit{}
	svc := NewMaintenanceService(seededStore(t, filepath.Join(t.TempDir(), "missing.epub")), nil, audit, nil)

	result, err := svc.VerifyFiles(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Missing)
	assert.Equal(t, 1, audit.verifies)
}
