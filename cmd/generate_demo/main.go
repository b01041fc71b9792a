// Command generate_demo creates a demo catalog with public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mrlokans/shelf/internal/catalog"
	"github.com/mrlokans/shelf/internal/config"
	"github.com/mrlokans/shelf/internal/entrypoint"
)

const defaultDemoDatabasePath = "./demo/demo.db"

// demoPublication describes one seeded publication and how far it has been read.
type demoPublication struct {
	Details     catalog.Details
	ISBN        string
	ISSN        string
	Issue       int
	StartedAgo  int // days; 0 leaves the publication unread
	FinishedAgo int // days; 0 leaves it in progress
	Rating      float64
	Notes       [][2]string // text, excerpt
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	cfg := config.NewConfig()
	cfg.Database.Path = *dbPath
	cfg.Storage.Backend = config.StorageBackendSQLite
	cfg.Audit.Dir = filepath.Join(filepath.Dir(*dbPath), "audit")

	app, err := entrypoint.Open(cfg, false)
	if err != nil {
		log.Fatalf("Failed to open demo catalog: %v", err)
	}
	defer app.Close()

	prefs := catalog.DefaultConfiguration()
	if err := prefs.SetAnnualGoal(12); err != nil {
		log.Fatalf("Failed to set annual goal: %v", err)
	}
	if err := prefs.SetSimultaneousReadingLimit(3); err != nil {
		log.Fatalf("Failed to set reading limit: %v", err)
	}
	prefs.SetFavoriteGenre("Philosophy")
	if err := app.Settings.SaveConfiguration(prefs); err != nil {
		log.Fatalf("Failed to save preferences: %v", err)
	}
	owner, err := catalog.NewUser("Demo Reader", "reader@example.com")
	if err != nil {
		log.Fatalf("Failed to create owner: %v", err)
	}
	if err := app.Settings.SetOwner(owner); err != nil {
		log.Fatalf("Failed to save owner: %v", err)
	}

	for i, d := range getPublicDomainPublications() {
		d.Details.ID = i + 1
		p, err := build(d)
		if err != nil {
			log.Printf("Failed to build %s: %v", d.Details.Title, err)
			continue
		}
		if err := app.Catalog.Register(p); err != nil {
			log.Printf("Failed to register %s: %v", p.Title(), err)
			continue
		}
		log.Printf("Saved: %s (%s, %d notes)", p, p.Status(), p.AnnotationCount())
	}

	log.Println("Demo catalog generated successfully!")
}

func build(d demoPublication) (*catalog.Publication, error) {
	var p *catalog.Publication
	var err error
	if d.ISSN != "" {
		p, err = catalog.NewPeriodical(d.Details, d.ISSN, d.Issue)
	} else {
		p, err = catalog.NewBook(d.Details, d.ISBN, 1)
	}
	if err != nil {
		return nil, err
	}

	today := catalog.Today()
	if d.StartedAgo > 0 {
		if err := p.StartReadingOn(today.AddDate(0, 0, -d.StartedAgo)); err != nil {
			return nil, err
		}
	}
	if d.FinishedAgo > 0 {
		finished := today.AddDate(0, 0, -d.FinishedAgo)
		if err := p.FinishReadingOn(finished); err != nil {
			return nil, err
		}
		if d.Rating > 0 {
			if err := p.RateOn(d.Rating, finished); err != nil {
				return nil, err
			}
		}
	}
	for _, n := range d.Notes {
		createdOn := today.AddDate(0, 0, -d.StartedAgo)
		a, err := catalog.RestoreAnnotation(uuid.NewString(), n[0], n[1], createdOn)
		if err != nil {
			return nil, err
		}
		if err := p.AddAnnotation(a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func getPublicDomainPublications() []demoPublication {
	return []demoPublication{
		{
			Details: catalog.Details{Title: "Meditations", Author: "Marcus Aurelius", Publisher: "Macmillan",
				Year: 1862, Genre: "Philosophy", NumberOfPages: 254},
			StartedAgo: 120, FinishedAgo: 90, Rating: 9.5,
			Notes: [][2]string{
				{"Control is internal.", "You have power over your mind - not outside events."},
				{"Stop debating virtue and practise it.", "Waste no more time arguing about what a good man should be. Be one."},
			},
		},
		{
			Details: catalog.Details{Title: "Letters from a Stoic", Author: "Seneca", Publisher: "Penguin",
				Year: 1917, Genre: "Philosophy", NumberOfPages: 254},
			StartedAgo: 80, FinishedAgo: 50, Rating: 8,
			Notes: [][2]string{
				{"Most suffering is imagined.", "We suffer more often in imagination than in reality."},
			},
		},
		{
			Details: catalog.Details{Title: "On the Origin of Species", Author: "Charles Darwin", Publisher: "John Murray",
				Year: 1859, Genre: "Science", NumberOfPages: 502},
			StartedAgo: 45, FinishedAgo: 10, Rating: 8,
		},
		{
			Details: catalog.Details{Title: "Pride and Prejudice", Author: "Jane Austen", Publisher: "T. Egerton",
				Year: 1813, Genre: "Fiction", NumberOfPages: 432},
			StartedAgo: 30, FinishedAgo: 20, Rating: 7.5,
		},
		{
			Details: catalog.Details{Title: "Walden", Author: "Henry David Thoreau", Publisher: "Ticknor and Fields",
				Year: 1854, Genre: "Philosophy", NumberOfPages: 352},
			StartedAgo: 7,
			Notes: [][2]string{
				{"Simplicity as a discipline.", "Our life is frittered away by detail. Simplify, simplify."},
			},
		},
		{
			Details: catalog.Details{Title: "Frankenstein", Author: "Mary Shelley", Publisher: "Lackington",
				Year: 1818, Genre: "Fiction", NumberOfPages: 280},
			StartedAgo: 3,
		},
		{
			Details: catalog.Details{Title: "The Art of War", Author: "Sun Tzu", Publisher: "Luzac",
				Year: 1910, Genre: "Strategy", NumberOfPages: 68},
		},
		{
			Details: catalog.Details{Title: "Popular Science Monthly, May 1872", Author: "Edward L. Youmans", Publisher: "D. Appleton",
				Year: 1872, Genre: "Science", NumberOfPages: 128},
			ISSN: "0161-7370", Issue: 1,
			StartedAgo: 15, FinishedAgo: 12, Rating: 6,
		},
		{
			Details: catalog.Details{Title: "Popular Science Monthly, June 1872", Author: "Edward L. Youmans", Publisher: "D. Appleton",
				Year: 1872, Genre: "Science", NumberOfPages: 128},
			ISSN: "0161-7370", Issue: 2,
		},
	}
}
