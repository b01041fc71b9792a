package publications

import (
	"time"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// FromRecord maps a publication record to its database row.
func FromRecord(r catalog.PublicationRecord) (entities.Publication, error) {
	row := entities.Publication{
		ID:            uint(r.ID),
		Type:          r.Type,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		Year:          r.Year,
		Genre:         r.Genre,
		NumberOfPages: r.NumberOfPages,
		ISBN:          r.ISBN,
		Edition:       r.Edition,
		ISSN:          r.ISSN,
		IssueNumber:   r.IssueNumber,
		FilePath:      r.FilePath,
		Status:        r.Status,
		Rating:        r.Rating,
	}
	var err error
	if row.StartReadDate, err = parseDate(r.StartReadDate); err != nil {
		return row, err
	}
	if row.EndReadDate, err = parseDate(r.EndReadDate); err != nil {
		return row, err
	}
	if row.RatingDate, err = parseDate(r.RatingDate); err != nil {
		return row, err
	}
	for i, a := range r.Annotations {
		created, err := catalog.ParseDate(a.Date)
		if err != nil {
			return row, err
		}
		row.Annotations = append(row.Annotations, entities.Annotation{
			PublicationID:    uint(r.ID),
			AnnotationID:     a.ID,
			Position:         i,
			Text:             a.Text,
			ReferenceExcerpt: a.ReferenceExcerpt,
			CreatedOn:        created,
		})
	}
	return row, nil
}

// ToRecord maps a database row back to a publication record.
func ToRecord(row entities.Publication) catalog.PublicationRecord {
	r := catalog.PublicationRecord{
		Type:          row.Type,
		ID:            int(row.ID),
		Title:         row.Title,
		Author:        row.Author,
		Publisher:     row.Publisher,
		Year:          row.Year,
		Genre:         row.Genre,
		NumberOfPages: row.NumberOfPages,
		ISBN:          row.ISBN,
		Edition:       row.Edition,
		ISSN:          row.ISSN,
		IssueNumber:   row.IssueNumber,
		FilePath:      row.FilePath,
		Status:        row.Status,
		StartReadDate: formatDate(row.StartReadDate),
		EndReadDate:   formatDate(row.EndReadDate),
		Rating:        row.Rating,
		RatingDate:    formatDate(row.RatingDate),
		Annotations:   make([]catalog.AnnotationRecord, 0, len(row.Annotations)),
	}
	for _, a := range row.Annotations {
		r.Annotations = append(r.Annotations, catalog.AnnotationRecord{
			ID:               a.AnnotationID,
			Text:             a.Text,
			ReferenceExcerpt: a.ReferenceExcerpt,
			Date:             catalog.FormatDate(a.CreatedOn.UTC()),
		})
	}
	return r
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := catalog.ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := catalog.FormatDate(t.UTC())
	return &s
}
