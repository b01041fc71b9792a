package catalog

import "strings"

// Status is the reading lifecycle state of a publication.
type Status string

const (
	StatusUnread  Status = "UNREAD"
	StatusReading Status = "READING"
	StatusRead    Status = "READ"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusUnread, StatusReading, StatusRead}

func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusReading, StatusRead:
		return true
	}
	return false
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", newError(ErrValidation, "unknown status %q (expected UNREAD, READING or READ)", s)
	}
	return status, nil
}

// Kind discriminates the publication variants.
type Kind string

const (
	KindBook       Kind = "Book"
	KindPeriodical Kind = "Periodical"
)

func (k Kind) Valid() bool {
	return k == KindBook || k == KindPeriodical
}

// ParseKind accepts "book" or "periodical" (any case); "magazine" is an alias of periodical.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book":
		return KindBook, nil
	case "periodical", "magazine":
		return KindPeriodical, nil
	}
	return "", newError(ErrValidation, "unknown publication type %q (expected Book or Periodical)", s)
}
