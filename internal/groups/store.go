package groups

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"codeberg.org/snonux/lexipick/internal/picker"
)

// ErrNotFound is returned when a group or entry does not exist.
var ErrNotFound = errors.New("not found")

// Group is a named study set of words and phrases.
type Group struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry is one word or phrase inside a group.
type Entry struct {
	ID           string
	GroupID      string
	Term         string
	Translation  string
	Phonetic     string
	Note         string
	IsPhrase     bool
	Illustration string
	Position     int
	CreatedAt    time.Time
}

// Store wraps the SQLite database holding all groups.
type Store struct {
	db *sql.DB

	// entropy is not safe for concurrent use
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		term TEXT NOT NULL,
		translation TEXT NOT NULL DEFAULT '',
		phonetic TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT '',
		is_phrase INTEGER NOT NULL DEFAULT 0,
		illustration TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_group ON entries(group_id, position)`,
}

// Open opens (creating if needed) the store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open group database: %w", err)
	}

	for _, query := range schema {
		if _, err := db.Exec(query); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &Store{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// CreateGroup creates an empty group.
func (s *Store) CreateGroup(name string) (*Group, error) {
	if name == "" {
		return nil, fmt.Errorf("group name must not be empty")
	}

	now := time.Now().UTC()
	group := &Group{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.Exec(
		`INSERT INTO groups (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		group.ID, group.Name, group.CreatedAt, group.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group %q: %w", name, err)
	}
	return group, nil
}

// Group loads a single group by ID.
func (s *Store) Group(id string) (*Group, error) {
	row := s.db.QueryRow(`SELECT id, name, created_at, updated_at FROM groups WHERE id = ?`, id)

	var g Group
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("group %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load group %q: %w", id, err)
	}
	return &g, nil
}

// Groups lists all groups, newest first.
func (s *Store) Groups() ([]*Group, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at, updated_at FROM groups ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var out []*Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

// RenameGroup changes a group's name.
func (s *Store) RenameGroup(id, name string) error {
	if name == "" {
		return fmt.Errorf("group name must not be empty")
	}
	result, err := s.db.Exec(
		`UPDATE groups SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename group %q: %w", id, err)
	}
	return s.expectOneRow(result, id)
}

// DeleteGroup removes a group and all of its entries.
func (s *Store) DeleteGroup(id string) error {
	result, err := s.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group %q: %w", id, err)
	}
	return s.expectOneRow(result, id)
}

func (s *Store) expectOneRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("group %q: %w", id, ErrNotFound)
	}
	return nil
}

// AddEntry appends an entry to a group. The entry's ID, position and
// creation time are assigned by the store.
func (s *Store) AddEntry(groupID string, entry *Entry) error {
	if entry.Term == "" {
		return fmt.Errorf("entry term must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM groups WHERE id = ?`, groupID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check group %q: %w", groupID, err)
	}
	if exists == 0 {
		return fmt.Errorf("group %q: %w", groupID, ErrNotFound)
	}

	var position int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(position)+1, 0) FROM entries WHERE group_id = ?`, groupID,
	).Scan(&position); err != nil {
		return fmt.Errorf("failed to compute entry position: %w", err)
	}

	entry.ID = s.newID()
	entry.GroupID = groupID
	entry.Position = position
	entry.CreatedAt = time.Now().UTC()

	_, err = tx.Exec(
		`INSERT INTO entries (id, group_id, term, translation, phonetic, note, is_phrase, illustration, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.GroupID, entry.Term, entry.Translation, entry.Phonetic,
		entry.Note, entry.IsPhrase, entry.Illustration, entry.Position, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %q: %w", entry.Term, err)
	}

	if _, err := tx.Exec(`UPDATE groups SET updated_at = ? WHERE id = ?`, entry.CreatedAt, groupID); err != nil {
		return fmt.Errorf("failed to touch group %q: %w", groupID, err)
	}

	return tx.Commit()
}

// Entries lists a group's entries in insertion order.
func (s *Store) Entries(groupID string) ([]*Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, group_id, term, translation, phonetic, note, is_phrase, illustration, position, created_at
		 FROM entries WHERE group_id = ? ORDER BY position`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.Term, &e.Translation, &e.Phonetic,
			&e.Note, &e.IsPhrase, &e.Illustration, &e.Position, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// UpdateEntry stores new term, translation, phonetic and note values
// for an existing entry.
func (s *Store) UpdateEntry(entry *Entry) error {
	result, err := s.db.Exec(
		`UPDATE entries SET term = ?, translation = ?, phonetic = ?, note = ? WHERE id = ?`,
		entry.Term, entry.Translation, entry.Phonetic, entry.Note, entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %q: %w", entry.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", entry.ID, ErrNotFound)
	}
	return nil
}

// DeleteEntry removes one entry.
func (s *Store) DeleteEntry(id string) error {
	result, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry %q: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", id, ErrNotFound)
	}
	return nil
}

// AttachIllustration records the image file attached to an entry.
func (s *Store) AttachIllustration(entryID, path string) error {
	if path == "" {
		return fmt.Errorf("illustration path must not be empty")
	}
	return s.setIllustration(entryID, path)
}

// DetachIllustration removes an entry's illustration reference. The
// image file itself is left alone.
func (s *Store) DetachIllustration(entryID string) error {
	return s.setIllustration(entryID, "")
}

func (s *Store) setIllustration(entryID, path string) error {
	result, err := s.db.Exec(`UPDATE entries SET illustration = ? WHERE id = ?`, path, entryID)
	if err != nil {
		return fmt.Errorf("failed to update illustration for %q: %w", entryID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}
	return nil
}

// SaveExport persists a picker export document as a new group: one
// entry per word, then one per phrase, keeping document order.
func (s *Store) SaveExport(name string, doc picker.Document) (*Group, error) {
	group, err := s.CreateGroup(name)
	if err != nil {
		return nil, err
	}

	for _, word := range doc.Words {
		if err := s.AddEntry(group.ID, &Entry{Term: word}); err != nil {
			return nil, err
		}
	}
	for _, phrase := range doc.Phrases {
		if err := s.AddEntry(group.ID, &Entry{Term: phrase, IsPhrase: true}); err != nil {
			return nil, err
		}
	}
	return group, nil
}
