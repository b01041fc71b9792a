package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// CatalogService runs catalog operations against persistent storage.
// Every mutation loads the collection, applies the change, saves it back
// and records an audit event.
type CatalogService struct {
	store     CatalogStore
	prefs     ConfigurationProvider
	audit     AuditLogger
	snapshots SnapshotWriter
}

// NewCatalogService creates a new CatalogService. audit and snapshots may be nil.
func NewCatalogService(store CatalogStore, prefs ConfigurationProvider, audit AuditLogger, snapshots SnapshotWriter) *CatalogService {
	return &CatalogService{
		store:     store,
		prefs:     prefs,
		audit:     audit,
		snapshots: snapshots,
	}
}

// AnnotationMatch is an annotation found by SearchAnnotations.
type AnnotationMatch struct {
	Publication *catalog.Publication
	Annotation  catalog.Annotation
}

// Collection returns the persisted collection.
func (s *CatalogService) Collection() (*catalog.Collection, error) {
	c, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// Configuration returns the effective reading preferences.
func (s *CatalogService) Configuration() *catalog.Configuration {
	if s.prefs == nil {
		return catalog.DefaultConfiguration()
	}
	return s.prefs.GetConfiguration()
}

// Get returns a single publication.
func (s *CatalogService) Get(id int) (*catalog.Publication, error) {
	c, err := s.Collection()
	if err != nil {
		return nil, err
	}
	p, ok := c.Get(id)
	if !ok {
		return nil, &catalog.Error{Kind: catalog.ErrNotFound, Message: fmt.Sprintf("publication with ID %d not found", id)}
	}
	return p, nil
}

// Add builds a publication with the next free id and registers it.
func (s *CatalogService) Add(build func(id int) (*catalog.Publication, error)) (*catalog.Publication, error) {
	var added *catalog.Publication
	err := s.mutate(func(c *catalog.Collection) error {
		p, err := build(c.NextID())
		if err != nil {
			return err
		}
		if err := c.Register(p); err != nil {
			return err
		}
		added = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logPublication(entities.AuditEventRegister, added.ID(), "Registered "+added.String(), nil)
	return added, nil
}

// Register adds a publication that already carries its id.
func (s *CatalogService) Register(p *catalog.Publication) error {
	err := s.mutate(func(c *catalog.Collection) error {
		return c.Register(p)
	})
	if err != nil {
		return err
	}
	s.logPublication(entities.AuditEventRegister, p.ID(), "Registered "+p.String(), nil)
	return nil
}

// StartReading moves a publication to READING, honouring the simultaneous reading limit.
func (s *CatalogService) StartReading(id int) error {
	cfg := s.Configuration()
	err := s.mutate(func(c *catalog.Collection) error {
		return c.StartPublicationReading(id, cfg)
	})
	s.logPublication(entities.AuditEventReadingStarted, id, "Started reading", err)
	return err
}

func (s *CatalogService) FinishReading(id int) error {
	err := s.mutate(func(c *catalog.Collection) error {
		return c.FinishPublicationReading(id)
	})
	s.logPublication(entities.AuditEventReadingFinished, id, "Finished reading", err)
	return err
}

func (s *CatalogService) Rate(id int, value float64) error {
	err := s.mutate(func(c *catalog.Collection) error {
		return c.RatePublication(id, value)
	})
	s.logPublication(entities.AuditEventRated, id, fmt.Sprintf("Rated %.1f", value), err)
	return err
}

// Remove deletes a publication after writing a snapshot of its last state.
func (s *CatalogService) Remove(id int) (*catalog.Publication, error) {
	var removed *catalog.Publication
	err := s.mutate(func(c *catalog.Collection) error {
		p, ok := c.Get(id)
		if !ok {
			return &catalog.Error{Kind: catalog.ErrNotFound, Message: fmt.Sprintf("publication with ID %d not found", id)}
		}
		removed = p
		c.Remove(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := ""
	if s.snapshots != nil {
		name, err := s.snapshots.SaveJSON(removed.Record())
		if err != nil {
			log.Printf("Failed to save snapshot of publication %d: %v", id, err)
		}
		snapshot = name
	}
	if s.audit != nil {
		s.audit.LogRemoval(id, "Removed "+removed.String(), snapshot)
	}
	return removed, nil
}

// AddAnnotation attaches a new note with a generated id to a publication.
func (s *CatalogService) AddAnnotation(publicationID int, text, excerpt string) (catalog.Annotation, error) {
	a, err := catalog.NewAnnotation(uuid.NewString(), text, excerpt)
	if err != nil {
		return catalog.Annotation{}, err
	}
	err = s.mutate(func(c *catalog.Collection) error {
		p, ok := c.Get(publicationID)
		if !ok {
			return &catalog.Error{Kind: catalog.ErrNotFound, Message: fmt.Sprintf("publication with ID %d not found", publicationID)}
		}
		return p.AddAnnotation(a)
	})
	if err != nil {
		return catalog.Annotation{}, err
	}
	if s.audit != nil {
		s.audit.LogAnnotation(entities.AuditEventAnnotationAdded, publicationID, a.ID(), "Added annotation")
	}
	return a, nil
}

// RemoveAnnotation deletes a note from a publication.
func (s *CatalogService) RemoveAnnotation(publicationID int, annotationID string) error {
	err := s.mutate(func(c *catalog.Collection) error {
		p, ok := c.Get(publicationID)
		if !ok {
			return &catalog.Error{Kind: catalog.ErrNotFound, Message: fmt.Sprintf("publication with ID %d not found", publicationID)}
		}
		if !p.RemoveAnnotation(annotationID) {
			return &catalog.Error{Kind: catalog.ErrNotFound, Message: fmt.Sprintf("annotation with ID %s not found", annotationID)}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.LogAnnotation(entities.AuditEventAnnotationRemoved, publicationID, annotationID, "Removed annotation")
	}
	return nil
}

// SearchAnnotations returns notes whose text or excerpt contains term, case-insensitively.
func (s *CatalogService) SearchAnnotations(term string) ([]AnnotationMatch, error) {
	c, err := s.Collection()
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var matches []AnnotationMatch
	for _, p := range c.ListAll() {
		for _, a := range p.Annotations() {
			if strings.Contains(strings.ToLower(a.Text()), term) ||
				strings.Contains(strings.ToLower(a.ReferenceExcerpt()), term) {
				matches = append(matches, AnnotationMatch{Publication: p, Annotation: a})
			}
		}
	}
	return matches, nil
}

// AllAnnotations lists every note in the catalog, grouped by publication id.
func (s *CatalogService) AllAnnotations() ([]AnnotationMatch, error) {
	return s.SearchAnnotations("")
}

func (s *CatalogService) mutate(apply func(c *catalog.Collection) error) error {
	c, err := s.Collection()
	if err != nil {
		return err
	}
	if err := apply(c); err != nil {
		return err
	}
	if err := s.store.Save(c); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	return nil
}

func (s *CatalogService) logPublication(eventType entities.AuditEventType, id int, description string, err error) {
	if s.audit == nil {
		return
	}
	s.audit.LogPublication(eventType, id, description, err)
}
