// Package store holds the in-memory ordered sequence of crop records
// for one session.
package store

import (
	"fmt"

	"github.com/farmtech/fieldbook/internal/apperr"
	"github.com/farmtech/fieldbook/internal/field"
)

// Store is an ordered, mutable sequence of crop records. Indices at the
// API boundary are 1-based, matching the numbering shown to the user.
// Every mutator is all-or-nothing: an invalid index leaves the store
// exactly as it was.
type Store struct {
	records []field.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Append adds a record at the end. Duplicates are allowed.
func (s *Store) Append(r field.Record) {
	s.records = append(s.records, r)
}

// UpdateAt replaces the record at the 1-based index in place, keeping
// the record's position. Returns apperr.ErrIndexOutOfRange and leaves
// the store untouched when the index is invalid.
func (s *Store) UpdateAt(index int, r field.Record) error {
	if index < 1 || index > len(s.records) {
		return fmt.Errorf("store: update %d of %d: %w", index, len(s.records), apperr.ErrIndexOutOfRange)
	}
	s.records[index-1] = r
	return nil
}

// DeleteAt removes the record at the 1-based index, preserving the
// relative order of the remaining records.
func (s *Store) DeleteAt(index int) error {
	if index < 1 || index > len(s.records) {
		return fmt.Errorf("store: delete %d of %d: %w", index, len(s.records), apperr.ErrIndexOutOfRange)
	}
	s.records = append(s.records[:index-1], s.records[index:]...)
	return nil
}

// ReplaceAll swaps the entire content of the store, e.g. after import.
func (s *Store) ReplaceAll(records []field.Record) {
	s.records = records
}

// List returns a copy of the records in order, so callers cannot alias
// the store's backing slice.
func (s *Store) List() []field.Record {
	out := make([]field.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}
