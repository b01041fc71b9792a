package catalog

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Collection is the id-keyed set of publications in a catalog.
// It is not safe for concurrent use; callers serialise access.
type Collection struct {
	items map[int]*Publication
}

func NewCollection() *Collection {
	return &Collection{items: make(map[int]*Publication)}
}

// Register adds p, rejecting reused ids and title+author duplicates.
func (c *Collection) Register(p *Publication) error {
	if p == nil {
		return newError(ErrType, "must be a Publication instance")
	}
	if _, exists := c.items[p.id]; exists {
		return newError(ErrDuplicate, "publication with ID %d already exists", p.id)
	}
	for _, existing := range c.items {
		if existing.Equal(p) {
			return newError(ErrDuplicate, "publication %q by %q already exists", p.title, p.author)
		}
	}
	c.items[p.id] = p
	return nil
}

// Remove deletes the publication with the given id and reports whether it was present.
func (c *Collection) Remove(id int) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

func (c *Collection) Get(id int) (*Publication, bool) {
	p, ok := c.items[id]
	return p, ok
}

func (c *Collection) Len() int { return len(c.items) }

// NextID returns one more than the highest id in use.
func (c *Collection) NextID() int {
	highest := 0
	for id := range c.items {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

// ListAll returns every publication ordered by id.
func (c *Collection) ListAll() []*Publication {
	out := make([]*Publication, 0, len(c.items))
	for _, p := range c.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (c *Collection) filter(keep func(*Publication) bool) []*Publication {
	out := []*Publication{}
	for _, p := range c.ListAll() {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// SearchByAuthor returns publications whose author contains term, ignoring case.
func (c *Collection) SearchByAuthor(term string) []*Publication {
	return c.search(term, (*Publication).Author)
}

// SearchByTitle returns publications whose title contains term, ignoring case.
func (c *Collection) SearchByTitle(term string) []*Publication {
	return c.search(term, (*Publication).Title)
}

func (c *Collection) search(term string, field func(*Publication) string) []*Publication {
	fold := cases.Fold()
	needle := fold.String(term)
	return c.filter(func(p *Publication) bool {
		return strings.Contains(fold.String(field(p)), needle)
	})
}

func (c *Collection) SearchByStatus(status Status) []*Publication {
	return c.filter(func(p *Publication) bool { return p.status == status })
}

// FilterByReadingPeriod returns READ publications finished within [start, end].
func (c *Collection) FilterByReadingPeriod(start, end time.Time) []*Publication {
	start, end = Day(start), Day(end)
	return c.filter(func(p *Publication) bool {
		if p.status != StatusRead || p.endReadDate == nil {
			return false
		}
		d := *p.endReadDate
		return !d.Before(start) && !d.After(end)
	})
}

// CountByStatus returns how many publications currently have status.
func (c *Collection) CountByStatus(status Status) int {
	n := 0
	for _, p := range c.items {
		if p.status == status {
			n++
		}
	}
	return n
}

// StartPublicationReading starts reading id unless cfg's simultaneous reading
// limit has already been reached.
func (c *Collection) StartPublicationReading(id int, cfg *Configuration) error {
	return c.StartPublicationReadingOn(id, cfg, Today())
}

func (c *Collection) StartPublicationReadingOn(id int, cfg *Configuration, day time.Time) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	if c.CountByStatus(StatusReading) >= cfg.SimultaneousReadingLimit() {
		return newError(ErrLimitExceeded, "maximum number of simultaneous readings reached")
	}
	return p.StartReadingOn(day)
}

func (c *Collection) FinishPublicationReading(id int) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	return p.FinishReading()
}

func (c *Collection) RatePublication(id int, value float64) error {
	p, err := c.lookup(id)
	if err != nil {
		return err
	}
	return p.Rate(value)
}

func (c *Collection) lookup(id int) (*Publication, error) {
	p, ok := c.items[id]
	if !ok {
		return nil, newError(ErrNotFound, "publication with ID %d not found", id)
	}
	return p, nil
}
