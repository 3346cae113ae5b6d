package salesbook

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/shopspring/decimal"
)

// Store owns the file-backed ledger. Every operation is one logical critical
// section: it acquires exclusive access to the backing file, loads the book,
// applies the operation, persists when the operation mutated, and releases
// on all exit paths. Between an allocator or matcher scan and the write that
// follows no other process can touch the file.
//
// A backing file held by another process surfaces as ErrStorageUnavailable
// instead of blocking.
type Store struct {
	cfg Config
}

// NewStore creates a store over the configured backing file. The file itself
// is created lazily, on the first mutating operation.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{cfg: cfg}, nil
}

// Config returns the store's configuration value.
func (s *Store) Config() Config { return s.cfg }

// View runs fn on the current book under the exclusive lock, without saving.
func (s *Store) View(fn func(*Book) error) error {
	return s.exclusive(fn, false)
}

// Update runs fn on the current book under the exclusive lock and persists
// the book if and only if fn succeeds. A failing fn leaves the file exactly
// as it was.
func (s *Store) Update(fn func(*Book) error) error {
	return s.exclusive(fn, true)
}

func (s *Store) exclusive(fn func(*Book) error, save bool) (err error) {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	b, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(b); err != nil {
		return err
	}
	if save {
		return s.save(b)
	}
	return nil
}

// lock claims the ledger's lock file. The lock is a plain O_EXCL sibling
// file: creation is atomic on every platform the tool runs on, and a stale
// holder is visible to the operator as an explicit path in the error.
func (s *Store) lock() (unlock func() error, err error) {
	path := s.cfg.FilePath + ".lock"
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: ledger file is locked by another process (remove %q if stale)", ErrStorageUnavailable, path)
		}
		return nil, fmt.Errorf("%w: could not create lock file %q: %v", ErrStorageUnavailable, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: could not create lock file %q: %v", ErrStorageUnavailable, path, err)
	}
	return func() error {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("could not release lock file %q: %w", path, err)
		}
		return nil
	}, nil
}

func (s *Store) load() (*Book, error) {
	f, err := os.Open(s.cfg.FilePath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("ledger file %q does not exist, starting an empty %q table", s.cfg.FilePath, s.cfg.TableName)
		return NewBook(s.cfg), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open ledger file %q: %v", ErrStorageUnavailable, s.cfg.FilePath, err)
	}
	defer f.Close()

	b, err := DecodeBook(f, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: ledger file %q is corrupt: %v", ErrStorageUnavailable, s.cfg.FilePath, err)
	}
	return b, nil
}

func (s *Store) save(b *Book) error {
	f, err := os.Create(s.cfg.FilePath)
	if err != nil {
		return fmt.Errorf("%w: could not write ledger file %q: %v", ErrStorageUnavailable, s.cfg.FilePath, err)
	}
	defer f.Close()
	if err := EncodeBook(f, b); err != nil {
		return fmt.Errorf("%w: could not write ledger file %q: %v", ErrStorageUnavailable, s.cfg.FilePath, err)
	}
	return nil
}

// Create persists a new sale record and returns its slot and the record with
// all derived fields computed. The summary row is rewritten in the same
// operation.
func (s *Store) Create(sale Sale) (slot int, rec *Record, err error) {
	err = s.Update(func(b *Book) error {
		slot, rec, err = b.Create(sale)
		return err
	})
	return slot, rec, err
}

// UpdateRefund persists a refund amount against the record of the given
// slot. The summary row is rewritten in the same operation.
func (s *Store) UpdateRefund(slot int, amount decimal.Decimal) (rec *Record, err error) {
	err = s.Update(func(b *Book) error {
		rec, err = b.UpdateRefund(slot, amount)
		return err
	})
	return rec, err
}

// Record reads a single record.
func (s *Store) Record(slot int) (rec *Record, err error) {
	err = s.View(func(b *Book) error {
		rec, err = b.Record(slot)
		return err
	})
	return rec, err
}

// Row pairs a record with the slot it occupies.
type Row struct {
	Slot   int
	Record *Record
}

// Records reads all occupied slots, in slot order.
func (s *Store) Records() (rows []Row, err error) {
	err = s.View(func(b *Book) error {
		for slot, r := range b.All() {
			rows = append(rows, Row{Slot: slot, Record: r})
		}
		return nil
	})
	return rows, err
}

// Summary reads the current aggregates.
func (s *Store) Summary() (sum Summary, err error) {
	err = s.View(func(b *Book) error {
		sum = b.Summary()
		return nil
	})
	return sum, err
}
