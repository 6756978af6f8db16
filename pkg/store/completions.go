// Package store persists which airdrop campaigns have already been
// completed so repeated runs skip them.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Status records how a completion attempt ended.
type Status string

const (
	// StatusSuccess means every mandatory task verified.
	StatusSuccess Status = "success"
	// StatusPartial means at least one task failed verification.
	StatusPartial Status = "partial"
	// StatusFailed means no task could be completed.
	StatusFailed Status = "failed"
)

// timestampLayout is the on-disk completed_date format.
const timestampLayout = "2006-01-02 15:04:05"

// Record is the persisted entry for one campaign.
type Record struct {
	CompletedDate string `json:"completed_date"`
	Status        Status `json:"status"`
}

// CompletionStore is a JSON-document-backed mapping from campaign name
// to completion record. The whole document is loaded at construction
// and rewritten in full on every update. Records are never deleted
// programmatically.
//
// The load-then-rewrite cycle has no cross-process protection: two
// processes pointed at the same file will clobber each other. Single
// process only.
type CompletionStore struct {
	path    string
	logger  *logrus.Logger
	records map[string]Record
}

// NewCompletionStore loads the document at path. A missing file yields
// an empty store; malformed content is logged as a warning and also
// yields an empty store. It never fails.
func NewCompletionStore(path string, logger *logrus.Logger) *CompletionStore {
	if logger == nil {
		logger = logrus.New()
	}

	s := &CompletionStore{
		path:    path,
		logger:  logger,
		records: make(map[string]Record),
	}
	s.load()
	return s
}

func (s *CompletionStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).WithField("path", s.path).
				Warn("Could not read completed airdrops file, starting empty")
		}
		return
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		s.logger.WithError(err).WithField("path", s.path).
			Warn("Could not parse completed airdrops file, starting empty")
		s.records = make(map[string]Record)
	}
}

// IsCompleted reports whether a record exists for the campaign name.
// The match is exact and case-sensitive.
func (s *CompletionStore) IsCompleted(name string) bool {
	_, ok := s.records[name]
	return ok
}

// Get returns the record for a campaign name, if any.
func (s *CompletionStore) Get(name string) (Record, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

// Len returns the number of recorded campaigns.
func (s *CompletionStore) Len() int {
	return len(s.records)
}

// MarkCompleted inserts or overwrites the record for the campaign and
// rewrites the backing document. A persist failure is logged and
// returned; the in-memory record is kept either way.
func (s *CompletionStore) MarkCompleted(name string, status Status) error {
	s.records[name] = Record{
		CompletedDate: time.Now().Format(timestampLayout),
		Status:        status,
	}

	if err := s.persist(); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"campaign": name,
			"path":     s.path,
		}).Error("Failed to save completed airdrops")
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"campaign": name,
		"status":   status,
	}).Info("Marked airdrop completed")
	return nil
}

func (s *CompletionStore) persist() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal completion records: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
