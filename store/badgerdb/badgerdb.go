// Package badgerdb implements store.Store on an embedded Badger database.
//
// Key layout:
//
//	run/<id>        JSON-encoded skiing.Report
//	digest/<digest> id of the newest run for that grid
package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/skiroute/skiing"
	"github.com/katalvlaran/skiroute/store"
)

var (
	runPrefix    = []byte("run/")
	digestPrefix = []byte("digest/")
)

// KVStore implements store.Store using Badger.
type KVStore struct {
	db *badger.DB
}

var _ store.Store = (*KVStore)(nil)

// New wraps an open Badger database. The caller closes db.
func New(db *badger.DB) *KVStore {
	return &KVStore{db: db}
}

// Open opens (or creates) a Badger database in dir. An empty dir opens an
// in-memory database.
func Open(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerdb: open %q: %w", dir, err)
	}

	return db, nil
}

func runKey(id string) []byte         { return append(append([]byte(nil), runPrefix...), id...) }
func digestKey(digest string) []byte { return append(append([]byte(nil), digestPrefix...), digest...) }

// CreateSchema is a no-op; Badger is schemaless.
func (s *KVStore) CreateSchema(context.Context) error { return nil }

func (s *KVStore) SaveRun(_ context.Context, rep *skiing.Report) error {
	val, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("badgerdb: encode run %s: %w", rep.ID, err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		old, err := getRun(txn, rep.ID)
		switch {
		case errors.Is(err, store.ErrRunNotFound):
		case err != nil:
			return err
		case old.Digest != rep.Digest:
			if err := unindex(txn, old); err != nil {
				return err
			}
		}

		if err := txn.Set(runKey(rep.ID), val); err != nil {
			return err
		}

		cur, err := newestForDigest(txn, rep.Digest)
		switch {
		case errors.Is(err, store.ErrRunNotFound):
		case err != nil:
			return err
		case cur.ID != rep.ID && cur.CreatedAt.After(rep.CreatedAt):
			return nil
		}

		return txn.Set(digestKey(rep.Digest), []byte(rep.ID))
	})
	if err != nil {
		return fmt.Errorf("badgerdb: save run %s: %w", rep.ID, err)
	}

	return nil
}

func (s *KVStore) GetRun(_ context.Context, id string) (*skiing.Report, error) {
	var rep *skiing.Report
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rep, err = getRun(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rep, nil
}

func (s *KVStore) FindByDigest(_ context.Context, digest string) (*skiing.Report, error) {
	var rep *skiing.Report
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rep, err = newestForDigest(txn, digest)
		return err
	})
	if err != nil {
		return nil, err
	}

	return rep, nil
}

func (s *KVStore) ListRuns(_ context.Context, limit int) ([]skiing.Report, error) {
	var runs []skiing.Report
	err := s.db.View(func(txn *badger.Txn) error {
		return scanRuns(txn, func(rep *skiing.Report) {
			runs = append(runs, *rep)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("badgerdb: list runs: %w", err)
	}

	store.SortNewestFirst(runs)
	if limit = store.NormalizeLimit(limit); len(runs) > limit {
		runs = runs[:limit]
	}

	return runs, nil
}

func (s *KVStore) DeleteRun(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		rep, err := getRun(txn, id)
		if err != nil {
			return err
		}
		if err := txn.Delete(runKey(id)); err != nil {
			return err
		}
		return unindex(txn, rep)
	})
}

func getRun(txn *badger.Txn, id string) (*skiing.Report, error) {
	item, err := txn.Get(runKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	var rep skiing.Report
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rep)
	}); err != nil {
		return nil, fmt.Errorf("badgerdb: decode run %s: %w", id, err)
	}

	return &rep, nil
}

// indexedID returns the run id stored under digest.
func indexedID(txn *badger.Txn, digest string) (string, error) {
	item, err := txn.Get(digestKey(digest))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", store.ErrRunNotFound
	}
	if err != nil {
		return "", err
	}
	id, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}

	return string(id), nil
}

func newestForDigest(txn *badger.Txn, digest string) (*skiing.Report, error) {
	id, err := indexedID(txn, digest)
	if err != nil {
		return nil, err
	}

	return getRun(txn, id)
}

// unindex points the digest entry of rep at the newest other run with the
// same digest, or removes it.
func unindex(txn *badger.Txn, rep *skiing.Report) error {
	id, err := indexedID(txn, rep.Digest)
	if errors.Is(err, store.ErrRunNotFound) || (err == nil && id != rep.ID) {
		return nil
	}
	if err != nil {
		return err
	}

	var best *skiing.Report
	err = scanRuns(txn, func(r *skiing.Report) {
		if r.Digest != rep.Digest || r.ID == rep.ID {
			return
		}
		if best == nil || r.CreatedAt.After(best.CreatedAt) {
			best = r
		}
	})
	if err != nil {
		return err
	}
	if best == nil {
		return txn.Delete(digestKey(rep.Digest))
	}

	return txn.Set(digestKey(rep.Digest), []byte(best.ID))
}

func scanRuns(txn *badger.Txn, fn func(*skiing.Report)) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(runPrefix); it.ValidForPrefix(runPrefix); it.Next() {
		item := it.Item()
		var rep skiing.Report
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rep)
		}); err != nil {
			return fmt.Errorf("badgerdb: decode %s: %w", item.Key(), err)
		}
		fn(&rep)
	}

	return nil
}
