package catalog

import (
	"strings"
	"time"
)

// Annotation is a dated note attached to a single publication.
// It is immutable once built; copies are safe to hand out.
type Annotation struct {
	id               string
	text             string
	referenceExcerpt string
	createdOn        time.Time
}

// NewAnnotation builds an annotation dated today.
func NewAnnotation(id, text, referenceExcerpt string) (Annotation, error) {
	return RestoreAnnotation(id, text, referenceExcerpt, Today())
}

// RestoreAnnotation rebuilds an annotation with a known creation date.
func RestoreAnnotation(id, text, referenceExcerpt string, createdOn time.Time) (Annotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Annotation{}, newError(ErrValidation, "annotation ID cannot be empty")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Annotation{}, newError(ErrValidation, "text cannot be empty")
	}
	if createdOn.IsZero() {
		return Annotation{}, newError(ErrValidation, "annotation date is required")
	}
	return Annotation{
		id:               id,
		text:             text,
		referenceExcerpt: strings.TrimSpace(referenceExcerpt),
		createdOn:        Day(createdOn),
	}, nil
}

func (a Annotation) ID() string               { return a.id }
func (a Annotation) Text() string             { return a.text }
func (a Annotation) ReferenceExcerpt() string { return a.referenceExcerpt }
func (a Annotation) CreatedOn() time.Time     { return a.createdOn }

func (a Annotation) String() string {
	if a.referenceExcerpt == "" {
		return "[" + FormatDate(a.createdOn) + "] " + a.text
	}
	return "[" + FormatDate(a.createdOn) + "] " + a.text + " (\"" + a.referenceExcerpt + "\")"
}

func (a Annotation) isZero() bool {
	return a.id == "" && a.text == ""
}
