// Package archive persists raw genome bytes in BadgerDB, keyed by agent ID.
// Values are stored exactly as the genome bytes; no other encoding is used.
package archive

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const genomePrefix = "genome/"

var (
	// ErrGenomeNotFound is returned when no genome is stored under an ID.
	ErrGenomeNotFound = errors.New("genome not found")

	// ErrInvalidID is returned for IDs that are not UUIDs.
	ErrInvalidID = errors.New("agent id must be a UUID")
)

// Config configures where the archive lives.
type Config struct {
	Path       string // directory for BadgerDB files; required unless InMemory
	InMemory   bool   // keep everything in memory (tests)
	SyncWrites bool
}

// Archive is a genome store. Safe for concurrent use.
type Archive struct {
	db *badger.DB
}

// badgerLogger routes BadgerDB's logging through logrus, demoting its
// chatty info messages to debug.
type badgerLogger struct {
	entry *logrus.Entry
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.entry.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.entry.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.entry.Tracef(format, args...) }

// Open opens (creating if needed) the archive described by cfg.
// Caller must call Close when done.
func Open(cfg Config) (*Archive, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for a persistent archive")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create archive directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{entry: logrus.WithField("component", "archive")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open genome archive: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close flushes and closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// NewID returns a fresh archive key.
func NewID() string {
	return uuid.NewString()
}

func genomeKey(id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return []byte(genomePrefix + id), nil
}

// Put stores a copy of genome under id, replacing any previous value.
func (a *Archive) Put(id string, genome []byte) error {
	key, err := genomeKey(id)
	if err != nil {
		return err
	}
	val := append([]byte(nil), genome...)
	if err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	}); err != nil {
		return fmt.Errorf("storing genome %s: %w", id, err)
	}
	logrus.Debugf("archived genome %s (%d bytes)", id, len(genome))
	return nil
}

// Get returns the genome stored under id.
func (a *Archive) Get(id string) ([]byte, error) {
	key, err := genomeKey(id)
	if err != nil {
		return nil, err
	}
	var genome []byte
	err = a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		genome, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGenomeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading genome %s: %w", id, err)
	}
	return genome, nil
}

// Delete removes the genome stored under id. Deleting a missing ID is not an error.
func (a *Archive) Delete(id string) error {
	key, err := genomeKey(id)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// List returns every stored ID in key order.
func (a *Archive) List() ([]string, error) {
	var ids []string
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(genomePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, strings.TrimPrefix(string(it.Item().Key()), genomePrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing genomes: %w", err)
	}
	return ids, nil
}
