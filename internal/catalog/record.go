package catalog

import "time"

// AnnotationRecord is the flat form of an Annotation.
type AnnotationRecord struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	ReferenceExcerpt string `json:"referenceExcerpt,omitempty"`
	Date             string `json:"date"`
}

// PublicationRecord is the flat, storage-neutral form of a Publication.
// Optional values that are unset serialise as null or are omitted.
type PublicationRecord struct {
	Type          string             `json:"type"`
	ID            int                `json:"id"`
	Title         string             `json:"title"`
	Author        string             `json:"author"`
	Publisher     string             `json:"publisher"`
	Year          int                `json:"year"`
	Genre         string             `json:"genre"`
	NumberOfPages int                `json:"numberOfPages"`
	ISBN          string             `json:"isbn,omitempty"`
	Edition       int                `json:"edition,omitempty"`
	ISSN          string             `json:"issn,omitempty"`
	IssueNumber   int                `json:"issueNumber,omitempty"`
	FilePath      string             `json:"filePath,omitempty"`
	Status        string             `json:"status"`
	StartReadDate *string            `json:"startReadDate"`
	EndReadDate   *string            `json:"endReadDate"`
	Rating        *float64           `json:"rating"`
	RatingDate    *string            `json:"ratingDate"`
	Annotations   []AnnotationRecord `json:"annotations"`
}

type ConfigurationRecord struct {
	AnnualGoal               int    `json:"annualGoal"`
	SimultaneousReadingLimit int    `json:"simultaneousReadingLimit"`
	FavoriteGenre            string `json:"favoriteGenre"`
}

type CollectionRecord struct {
	Publications []PublicationRecord `json:"publications"`
}

func (a Annotation) Record() AnnotationRecord {
	return AnnotationRecord{
		ID:               a.id,
		Text:             a.text,
		ReferenceExcerpt: a.referenceExcerpt,
		Date:             FormatDate(a.createdOn),
	}
}

// AnnotationFromRecord rebuilds an annotation, validating every field.
func AnnotationFromRecord(r AnnotationRecord) (Annotation, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return Annotation{}, err
	}
	return RestoreAnnotation(r.ID, r.Text, r.ReferenceExcerpt, date)
}

func (p *Publication) Record() PublicationRecord {
	r := PublicationRecord{
		Type:          string(p.kind),
		ID:            p.id,
		Title:         p.title,
		Author:        p.author,
		Publisher:     p.publisher,
		Year:          p.year,
		Genre:         p.genre,
		NumberOfPages: p.numberOfPages,
		FilePath:      p.filePath,
		Status:        string(p.status),
		StartReadDate: formatOptional(p.startReadDate),
		EndReadDate:   formatOptional(p.endReadDate),
		RatingDate:    formatOptional(p.ratingDate),
		Annotations:   make([]AnnotationRecord, 0, len(p.annotations)),
	}
	if p.kind == KindBook {
		r.ISBN = p.isbn
		r.Edition = p.edition
	} else {
		r.ISSN = p.issn
		r.IssueNumber = p.issueNumber
	}
	if p.rating != nil {
		v := *p.rating
		r.Rating = &v
	}
	for _, a := range p.annotations {
		r.Annotations = append(r.Annotations, a.Record())
	}
	return r
}

// PublicationFromRecord rebuilds a publication, rejecting records whose
// lifecycle fields are inconsistent with their status.
func PublicationFromRecord(r PublicationRecord) (*Publication, error) {
	kind, err := ParseKind(r.Type)
	if err != nil {
		return nil, err
	}
	d := Details{
		ID:            r.ID,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		Year:          r.Year,
		Genre:         r.Genre,
		NumberOfPages: r.NumberOfPages,
		FilePath:      r.FilePath,
	}
	var p *Publication
	if kind == KindBook {
		p, err = NewBook(d, r.ISBN, r.Edition)
	} else {
		p, err = NewPeriodical(d, r.ISSN, r.IssueNumber)
	}
	if err != nil {
		return nil, err
	}
	if err := p.restoreLifecycle(r); err != nil {
		return nil, err
	}
	for _, ar := range r.Annotations {
		a, err := AnnotationFromRecord(ar)
		if err != nil {
			return nil, err
		}
		if err := p.AddAnnotation(a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Publication) restoreLifecycle(r PublicationRecord) error {
	status, err := ParseStatus(r.Status)
	if err != nil {
		return err
	}
	start, err := parseOptional(r.StartReadDate)
	if err != nil {
		return err
	}
	end, err := parseOptional(r.EndReadDate)
	if err != nil {
		return err
	}
	ratingDate, err := parseOptional(r.RatingDate)
	if err != nil {
		return err
	}

	switch status {
	case StatusUnread:
		if start != nil || end != nil {
			return newError(ErrValidation, "unread publication %d cannot have reading dates", r.ID)
		}
	case StatusReading:
		if start == nil || end != nil {
			return newError(ErrValidation, "publication %d in READING status needs a start date and no end date", r.ID)
		}
	case StatusRead:
		if start == nil || end == nil {
			return newError(ErrValidation, "publication %d in READ status needs start and end dates", r.ID)
		}
	}

	if r.Rating != nil || ratingDate != nil {
		if status != StatusRead {
			return newError(ErrState, "publication cannot be evaluated without finishing reading")
		}
		if r.Rating == nil || ratingDate == nil {
			return newError(ErrValidation, "publication %d has an incomplete rating", r.ID)
		}
		if err := validateRating(*r.Rating); err != nil {
			return err
		}
		v := *r.Rating
		p.rating = &v
	}

	p.status = status
	p.startReadDate = start
	p.endReadDate = end
	p.ratingDate = ratingDate
	return nil
}

func (c *Configuration) Record() ConfigurationRecord {
	return ConfigurationRecord{
		AnnualGoal:               c.annualGoal,
		SimultaneousReadingLimit: c.simultaneousReadingLimit,
		FavoriteGenre:            c.favoriteGenre,
	}
}

func ConfigurationFromRecord(r ConfigurationRecord) (*Configuration, error) {
	return NewConfiguration(r.AnnualGoal, r.SimultaneousReadingLimit, r.FavoriteGenre)
}

// Record returns the collection's publications ordered by id.
func (c *Collection) Record() CollectionRecord {
	pubs := c.ListAll()
	r := CollectionRecord{Publications: make([]PublicationRecord, 0, len(pubs))}
	for _, p := range pubs {
		r.Publications = append(r.Publications, p.Record())
	}
	return r
}

// CollectionFromRecord registers every record, failing on the first invalid
// or duplicate publication.
func CollectionFromRecord(r CollectionRecord) (*Collection, error) {
	c := NewCollection()
	for _, pr := range r.Publications {
		p, err := PublicationFromRecord(pr)
		if err != nil {
			return nil, err
		}
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

func parseOptional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
