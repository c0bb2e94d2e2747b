// Package fieldsvc coordinates the record store, the flattening codec
// and the data directory.
package fieldsvc

import (
	"bytes"
	"log/slog"

	"github.com/farmtech/fieldbook/internal/apperr"
	"github.com/farmtech/fieldbook/internal/codec"
	"github.com/farmtech/fieldbook/internal/field"
	"github.com/farmtech/fieldbook/internal/storage"
	"github.com/farmtech/fieldbook/internal/store"
)

// Service owns one session's records and persists them on request.
type Service struct {
	store      *store.Store
	codec      *codec.Codec
	files      storage.Provider
	exportFile string
	logger     *slog.Logger
}

// NewService creates a new field record service. exportFile is the name
// inside the data directory that Export overwrites.
func NewService(st *store.Store, c *codec.Codec, files storage.Provider, exportFile string, logger *slog.Logger) *Service {
	return &Service{
		store:      st,
		codec:      c,
		files:      files,
		exportFile: exportFile,
		logger:     logger,
	}
}

// Add appends a record to the store.
func (s *Service) Add(r field.Record) {
	s.store.Append(r)
	s.logger.Debug("record added", slog.String("crop", r.Type), slog.Int("count", s.store.Len()))
}

// Records returns the ordered records.
func (s *Service) Records() []field.Record {
	return s.store.List()
}

// Len returns the number of records.
func (s *Service) Len() int {
	return s.store.Len()
}

// UpdateAt replaces the record at the 1-based index in place.
func (s *Service) UpdateAt(index int, r field.Record) error {
	return s.store.UpdateAt(index, r)
}

// DeleteAt removes the record at the 1-based index.
func (s *Service) DeleteAt(index int) error {
	return s.store.DeleteAt(index)
}

// ListFiles returns the importable .csv files in the data directory.
func (s *Service) ListFiles() ([]string, error) {
	return s.files.List()
}

// Export flattens all records into the configured export file,
// overwriting it wholesale. An empty store returns apperr.ErrNoData and
// does not create or touch the file. The codec runs into a buffer first
// so a failed encode never reaches disk.
func (s *Service) Export() (string, int, error) {
	records := s.store.List()
	if len(records) == 0 {
		return "", 0, apperr.ErrNoData
	}
	var buf bytes.Buffer
	if err := s.codec.Encode(&buf, records); err != nil {
		return "", 0, err
	}
	if err := s.files.Write(s.exportFile, buf.Bytes()); err != nil {
		return "", 0, err
	}
	s.logger.Info("records exported",
		slog.Int("count", len(records)),
		slog.String("file", s.exportFile))
	return s.exportFile, len(records), nil
}

// Import reads the named file from the data directory, decodes it, and
// replaces the store's entire content. All-or-nothing: on any failure
// the store is left exactly as it was.
func (s *Service) Import(name string) (int, error) {
	data, err := s.files.Read(name)
	if err != nil {
		return 0, err
	}
	records, err := s.codec.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	s.store.ReplaceAll(records)
	s.logger.Info("records imported",
		slog.Int("count", len(records)),
		slog.String("file", name))
	return len(records), nil
}
