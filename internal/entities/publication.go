package entities

import "time"

// Publication is the stored form of a catalog publication. The primary key is
// the catalog id, assigned by the application rather than the database.
type Publication struct {
	ID            uint         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type          string       `gorm:"size:20" json:"type"`
	Title         string       `gorm:"index;size:512" json:"title"`
	Author        string       `gorm:"index;size:256" json:"author"`
	Publisher     string       `gorm:"size:256" json:"publisher,omitempty"`
	Year          int          `json:"year"`
	Genre         string       `gorm:"size:100" json:"genre,omitempty"`
	NumberOfPages int          `json:"number_of_pages"`
	ISBN          string       `gorm:"size:20" json:"isbn,omitempty"`
	Edition       int          `json:"edition,omitempty"`
	ISSN          string       `gorm:"size:20" json:"issn,omitempty"`
	IssueNumber   int          `json:"issue_number,omitempty"`
	FilePath      string       `gorm:"size:1024" json:"file_path,omitempty"`
	Status        string       `gorm:"index;size:20" json:"status"`
	StartReadDate *time.Time   `json:"start_read_date,omitempty"`
	EndReadDate   *time.Time   `gorm:"index" json:"end_read_date,omitempty"`
	Rating        *float64     `json:"rating,omitempty"`
	RatingDate    *time.Time   `json:"rating_date,omitempty"`
	Annotations   []Annotation `gorm:"foreignKey:PublicationID" json:"annotations,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Publication) TableName() string {
	return "publications"
}

// Annotation is a note attached to a publication. AnnotationID is the
// application-level id; Position keeps insertion order.
type Annotation struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	PublicationID    uint      `gorm:"index;uniqueIndex:idx_annotation_publication" json:"publication_id"`
	AnnotationID     string    `gorm:"size:100;uniqueIndex:idx_annotation_publication" json:"id"`
	Position         int       `json:"position"`
	Text             string    `gorm:"type:text" json:"text"`
	ReferenceExcerpt string    `gorm:"type:text" json:"reference_excerpt,omitempty"`
	CreatedOn        time.Time `json:"created_on"`
}

func (Annotation) TableName() string {
	return "annotations"
}
