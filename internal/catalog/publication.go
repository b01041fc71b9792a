package catalog

import (
	"math"
	"os"
	"sort"
	"strings"
	"time"
)

const (
	MinYear   = 1500
	MinRating = 0.0
	MaxRating = 10.0
)

// Details holds the bibliographic fields shared by every publication kind.
type Details struct {
	ID            int
	Title         string
	Author        string
	Publisher     string
	Year          int
	Genre         string
	NumberOfPages int
	FilePath      string
}

// Publication is a catalog item: a Book or a Periodical.
//
// Fields are private so that the lifecycle invariants can only change through
// StartReading, FinishReading and Rate.
type Publication struct {
	kind Kind

	id            int
	title         string
	author        string
	publisher     string
	year          int
	genre         string
	numberOfPages int
	filePath      string

	isbn    string
	edition int

	issn        string
	issueNumber int

	status        Status
	startReadDate *time.Time
	endReadDate   *time.Time
	rating        *float64
	ratingDate    *time.Time

	annotations []Annotation
}

// NewBook builds an unread book. An edition of 0 defaults to 1.
func NewBook(d Details, isbn string, edition int) (*Publication, error) {
	if edition == 0 {
		edition = 1
	}
	if edition < 0 {
		return nil, newError(ErrValidation, "edition must be positive")
	}
	p, err := newPublication(KindBook, d)
	if err != nil {
		return nil, err
	}
	p.isbn = strings.TrimSpace(isbn)
	p.edition = edition
	return p, nil
}

// NewPeriodical builds an unread periodical issue.
func NewPeriodical(d Details, issn string, issueNumber int) (*Publication, error) {
	if issueNumber <= 0 {
		return nil, newError(ErrValidation, "issue number must be positive")
	}
	p, err := newPublication(KindPeriodical, d)
	if err != nil {
		return nil, err
	}
	p.issn = strings.TrimSpace(issn)
	p.issueNumber = issueNumber
	return p, nil
}

func newPublication(kind Kind, d Details) (*Publication, error) {
	if d.ID <= 0 {
		return nil, newError(ErrValidation, "ID must be a positive integer")
	}
	title, err := validateTitle(d.Title)
	if err != nil {
		return nil, err
	}
	if d.Year < MinYear {
		return nil, newError(ErrValidation, "year must be greater than or equal to %d", MinYear)
	}
	if d.NumberOfPages <= 0 {
		return nil, newError(ErrValidation, "number of pages must be positive")
	}
	return &Publication{
		kind:          kind,
		id:            d.ID,
		title:         title,
		author:        d.Author,
		publisher:     d.Publisher,
		year:          d.Year,
		genre:         d.Genre,
		numberOfPages: d.NumberOfPages,
		filePath:      d.FilePath,
		status:        StatusUnread,
	}, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", newError(ErrValidation, "title cannot be empty")
	}
	return title, nil
}

func (p *Publication) Kind() Kind          { return p.kind }
func (p *Publication) ID() int             { return p.id }
func (p *Publication) Title() string       { return p.title }
func (p *Publication) Author() string      { return p.author }
func (p *Publication) Publisher() string   { return p.publisher }
func (p *Publication) Year() int           { return p.year }
func (p *Publication) Genre() string       { return p.genre }
func (p *Publication) NumberOfPages() int  { return p.numberOfPages }
func (p *Publication) FilePath() string    { return p.filePath }
func (p *Publication) ISBN() string        { return p.isbn }
func (p *Publication) Edition() int        { return p.edition }
func (p *Publication) ISSN() string        { return p.issn }
func (p *Publication) IssueNumber() int    { return p.issueNumber }
func (p *Publication) Status() Status      { return p.status }
func (p *Publication) IsBook() bool        { return p.kind == KindBook }
func (p *Publication) IsPeriodical() bool  { return p.kind == KindPeriodical }
func (p *Publication) HasRating() bool     { return p.rating != nil }

// AnnotationCount returns the number of notes without copying them.
func (p *Publication) AnnotationCount() int { return len(p.annotations) }

// SetTitle trims and replaces the title, rejecting blank values.
func (p *Publication) SetTitle(title string) error {
	t, err := validateTitle(title)
	if err != nil {
		return err
	}
	p.title = t
	return nil
}

// StartReadDate returns the date reading started, if any.
func (p *Publication) StartReadDate() (time.Time, bool) { return deref(p.startReadDate) }

// EndReadDate returns the date reading finished, if any.
func (p *Publication) EndReadDate() (time.Time, bool) { return deref(p.endReadDate) }

// RatingDate returns the date the current rating was given, if any.
func (p *Publication) RatingDate() (time.Time, bool) { return deref(p.ratingDate) }

// Rating returns the current rating, if any.
func (p *Publication) Rating() (float64, bool) {
	if p.rating == nil {
		return 0, false
	}
	return *p.rating, true
}

func deref(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// HasDigitalFile reports whether a non-blank file path is set.
func (p *Publication) HasDigitalFile() bool {
	return strings.TrimSpace(p.filePath) != ""
}

// DigitalFileExists checks the filesystem for the digital file.
func (p *Publication) DigitalFileExists() bool {
	if !p.HasDigitalFile() {
		return false
	}
	_, err := os.Stat(p.filePath)
	return err == nil
}

// StartReading moves the publication to READING as of today.
func (p *Publication) StartReading() error {
	return p.StartReadingOn(Today())
}

// StartReadingOn moves the publication to READING as of day. Re-reading a READ
// publication discards its end date and rating.
func (p *Publication) StartReadingOn(day time.Time) error {
	if p.status == StatusReading {
		return newError(ErrState, "publication already has READING status")
	}
	if p.status == StatusRead {
		p.endReadDate = nil
		p.rating = nil
		p.ratingDate = nil
	}
	d := Day(day)
	p.status = StatusReading
	p.startReadDate = &d
	return nil
}

// FinishReading moves a READING publication to READ as of today.
func (p *Publication) FinishReading() error {
	return p.FinishReadingOn(Today())
}

// FinishReadingOn moves a READING publication to READ as of day.
func (p *Publication) FinishReadingOn(day time.Time) error {
	if p.status != StatusReading || p.startReadDate == nil {
		return newError(ErrState, "publication cannot be finalized without starting reading")
	}
	d := Day(day)
	p.status = StatusRead
	p.endReadDate = &d
	return nil
}

// Rate records a rating in [0, 10] for a READ publication.
func (p *Publication) Rate(value float64) error {
	return p.RateOn(value, Today())
}

// RateOn records a rating dated day.
func (p *Publication) RateOn(value float64, day time.Time) error {
	if err := validateRating(value); err != nil {
		return err
	}
	if p.status != StatusRead {
		return newError(ErrState, "publication cannot be evaluated without finishing reading")
	}
	d := Day(day)
	p.rating = &value
	p.ratingDate = &d
	return nil
}

func validateRating(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return newError(ErrType, "rating must be a number")
	}
	if value < MinRating || value > MaxRating {
		return newError(ErrValidation, "rating cannot be less than 0 or greater than 10")
	}
	return nil
}

// AddAnnotation appends a note. Annotation ids must be unique per publication.
func (p *Publication) AddAnnotation(a Annotation) error {
	if a.isZero() {
		return newError(ErrType, "must be an Annotation instance")
	}
	for _, existing := range p.annotations {
		if existing.id == a.id {
			return newError(ErrDuplicate, "annotation with ID %s already exists", a.id)
		}
	}
	p.annotations = append(p.annotations, a)
	return nil
}

// Annotations returns a copy of the notes in insertion order.
func (p *Publication) Annotations() []Annotation {
	out := make([]Annotation, len(p.annotations))
	copy(out, p.annotations)
	return out
}

// Annotation looks up a note by id.
func (p *Publication) Annotation(id string) (Annotation, bool) {
	for _, a := range p.annotations {
		if a.id == id {
			return a, true
		}
	}
	return Annotation{}, false
}

// RemoveAnnotation deletes the note with the given id and reports whether it existed.
func (p *Publication) RemoveAnnotation(id string) bool {
	for i, a := range p.annotations {
		if a.id == id {
			p.annotations = append(p.annotations[:i:i], p.annotations[i+1:]...)
			return true
		}
	}
	return false
}

// Equal reports whether two publications share title and author (case-sensitive).
func (p *Publication) Equal(other *Publication) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.title == other.title && p.author == other.author
}

// Less orders publications by year.
func (p *Publication) Less(other *Publication) bool {
	return p.year < other.year
}

// SortByYear sorts pubs in place by year, oldest first, keeping the order of equal years.
func SortByYear(pubs []*Publication) {
	sort.SliceStable(pubs, func(i, j int) bool { return pubs[i].Less(pubs[j]) })
}

func (p *Publication) String() string {
	return p.title + " by " + p.author + " (" + string(p.kind) + ", " + string(p.status) + ")"
}
