// Package publications persists the catalog collection in SQLite.
//
// # Usage
//
//	repo := publications.NewRepository(db.DB)
//	collection, err := repo.Load()
//	...
//	err = repo.Save(collection)
package publications

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/entities"
)

// Repository handles publication and annotation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new publications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load reads every stored publication and rebuilds the collection.
// Rows that violate catalog invariants make Load fail.
func (r *Repository) Load() (*catalog.Collection, error) {
	var rows []entities.Publication
	err := r.db.
		Preload("Annotations", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load publications: %w", err)
	}

	c := catalog.NewCollection()
	for _, row := range rows {
		p, err := catalog.PublicationFromRecord(ToRecord(row))
		if err != nil {
			return nil, fmt.Errorf("publication %d: %w", row.ID, err)
		}
		if err := c.Register(p); err != nil {
			return nil, fmt.Errorf("publication %d: %w", row.ID, err)
		}
	}
	return c, nil
}

// Save makes the stored catalog match c in a single transaction: publications
// are upserted, their annotations replaced, and rows missing from c deleted.
func (r *Repository) Save(c *catalog.Collection) error {
	pubs := c.ListAll()
	ids := make([]uint, 0, len(pubs))

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pubs {
			row, err := FromRecord(p.Record())
			if err != nil {
				return err
			}
			annotations := row.Annotations
			row.Annotations = nil

			if err := tx.Omit(clause.Associations).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&row).Error; err != nil {
				return fmt.Errorf("failed to save publication %d: %w", row.ID, err)
			}
			if err := tx.Where("publication_id = ?", row.ID).Delete(&entities.Annotation{}).Error; err != nil {
				return fmt.Errorf("failed to clear annotations of %d: %w", row.ID, err)
			}
			if len(annotations) > 0 {
				if err := tx.Create(&annotations).Error; err != nil {
					return fmt.Errorf("failed to save annotations of %d: %w", row.ID, err)
				}
			}
			ids = append(ids, row.ID)
		}
		return deleteMissing(tx, ids)
	})
}

func deleteMissing(tx *gorm.DB, keep []uint) error {
	annotations := tx.Where("1 = 1")
	pubs := tx.Where("1 = 1")
	if len(keep) > 0 {
		annotations = tx.Where("publication_id NOT IN ?", keep)
		pubs = tx.Where("id NOT IN ?", keep)
	}
	if err := annotations.Delete(&entities.Annotation{}).Error; err != nil {
		return fmt.Errorf("failed to delete stale annotations: %w", err)
	}
	if err := pubs.Delete(&entities.Publication{}).Error; err != nil {
		return fmt.Errorf("failed to delete stale publications: %w", err)
	}
	return nil
}

// Count returns the number of stored publications.
func (r *Repository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entities.Publication{}).Count(&n).Error
	return n, err
}

// CountByStatus returns stored publication counts keyed by status.
func (r *Repository) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.Model(&entities.Publication{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}
