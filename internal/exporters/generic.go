package exporters

import "github.com/mrlokans/shelf/internal/catalog"

type CatalogExporter interface {
	Export(c *catalog.Collection, cfg *catalog.Configuration) (ExportResult, error)
}

type ExportResult struct {
	PublicationsProcessed int `json:"publications_processed"`
	AnnotationsProcessed  int `json:"annotations_processed"`
	PublicationsFailed    int `json:"publications_failed"`
	FilesWritten          int `json:"files_written"`
}
