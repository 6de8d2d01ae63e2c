package analytics

import (
	"context"
	"fmt"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/google/uuid"

	"sectionsnap/internal/domain"
)

// timestamps sort lexically in this layout
const timeLayout = "2006-01-02 15:04:05.000000"

// SectionCount is the number of times a section was landed on.
type SectionCount struct {
	Section    int
	SectionID  string
	Views      int
	LastViewed time.Time
}

// DocumentSummary aggregates the views of one document.
type DocumentSummary struct {
	Document string
	Views    int
	Sessions int
}

// Store records section views for one viewing session.
type Store struct {
	db      *DB
	session string
	clock   clock.Clock
}

// NewStore creates a Store backed by the given database with a fresh session id.
func NewStore(database *DB) *Store {
	return newStore(database, clock.NewClock())
}

func newStore(database *DB, clk clock.Clock) *Store {
	return &Store{db: database, session: uuid.New().String(), clock: clk}
}

// Session returns the id that groups the views recorded by this store.
func (s *Store) Session() string {
	return s.session
}

// Record stores one completed section change.
func (s *Store) Record(ctx context.Context, document string, ev domain.SectionChangedEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO section_views (id, session_id, document, section, section_id, total, viewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(),
		s.session,
		document,
		ev.Section,
		ev.SectionID,
		ev.TotalSections,
		s.clock.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record section view: %w", err)
	}
	return nil
}

// Report returns per-section view counts for document, ordered by section.
func (s *Store) Report(ctx context.Context, document string) ([]SectionCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section, section_id, COUNT(*), MAX(viewed_at)
		FROM section_views
		WHERE document = ?
		GROUP BY section, section_id
		ORDER BY section, section_id`, document)
	if err != nil {
		return nil, fmt.Errorf("failed to query section views: %w", err)
	}
	defer rows.Close()

	var out []SectionCount
	for rows.Next() {
		var c SectionCount
		var last string
		if err := rows.Scan(&c.Section, &c.SectionID, &c.Views, &last); err != nil {
			return nil, fmt.Errorf("failed to scan section view: %w", err)
		}
		c.LastViewed, err = time.Parse(timeLayout, last)
		if err != nil {
			return nil, fmt.Errorf("failed to parse view time %q: %w", last, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Documents summarizes every recorded document, most viewed first.
func (s *Store) Documents(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT document, COUNT(*), COUNT(DISTINCT session_id)
		FROM section_views
		GROUP BY document
		ORDER BY COUNT(*) DESC, document`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.Document, &d.Views, &d.Sessions); err != nil {
			return nil, fmt.Errorf("failed to scan document summary: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
