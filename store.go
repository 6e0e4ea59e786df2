package landing

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/cohortai/landing/views"
)

// teaserStore wraps a SQLite database holding the seeded fallback teasers
// shown on the home grid whenever the CMS has nothing to offer. It is a
// local stand-in for remote content, not an authoring store.
type teaserStore struct {
	db *sql.DB
}

// newTeaserStore opens (or creates) the database at path, ensures the data
// directory exists, and seeds the default teasers on first run.
func newTeaserStore(path string) (*teaserStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL plus a busy timeout so concurrent readers never see SQLITE_BUSY;
	// synchronous=NORMAL is safe under WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &teaserStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *teaserStore) Close() error {
	return s.db.Close()
}

func (s *teaserStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS teasers (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    image TEXT NOT NULL,
    position INTEGER NOT NULL
);
`)
	return err
}

// seed installs the default teasers when the table is empty. These are the
// evergreen "what to expect" cards the landing page showed before the blog
// had any published posts.
func (s *teaserStore) seed() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM teasers`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	defaults := []struct {
		slug, title, excerpt, image string
	}{
		{
			slug:    "ai-in-education-impact",
			title:   "AI in Education: From Buzzword to Classroom Impact",
			excerpt: "How artificial intelligence is moving beyond hype and starting to shape real decisions in schools, from workload planning to personalised support.",
			image:   "/placeholder/600x400.png?text=AI+Classroom",
		},
		{
			slug:    "predicting-staff-absence",
			title:   "Predicting Staff Absence with Data",
			excerpt: "Discover how machine learning can help schools anticipate absence patterns, reduce disruption, and keep teaching and learning on track.",
			image:   "/placeholder/600x400.png?text=Staff+Absence",
		},
		{
			slug:    "benchmarking-schools",
			title:   "Benchmarking Your School Against ‘Schools Like Yours’",
			excerpt: "Why comparative data matters: using AI-driven benchmarks to give school leaders clarity and confidence in decision-making.",
			image:   "/placeholder/600x400.png?text=Benchmarking",
		},
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for i, d := range defaults {
		if _, err := tx.Exec(`INSERT INTO teasers (slug, title, excerpt, image, position) VALUES (?, ?, ?, ?, ?)`,
			d.slug, d.title, d.excerpt, d.image, i); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Teasers returns the stored cards in display order.
func (s *teaserStore) Teasers() ([]views.BlogCard, error) {
	rows, err := s.db.Query(`SELECT slug, title, excerpt, image FROM teasers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []views.BlogCard
	for rows.Next() {
		var slug, title, excerpt, image string
		if err := rows.Scan(&slug, &title, &excerpt, &image); err != nil {
			return nil, err
		}
		cards = append(cards, views.BlogCard{
			Title:   title,
			Excerpt: excerpt,
			Link:    "/blog/" + slug,
			Image:   image,
		})
	}
	return cards, rows.Err()
}
