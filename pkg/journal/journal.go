// Package journal persists the continuation tokens of in-flight multi-step
// path operations.
//
// A recursive delete or rename may span many round trips; the service hands
// back an opaque token after each partial step. Recording the latest token
// per (operation, path) lets an interrupted run resume where it left off by
// passing the stored token as the initial one. Tokens are opaque: the
// journal stores and returns them without interpretation.
package journal

import (
	"fmt"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// Key namespace: one prefix, "t:", holding t:<operation>:<path> → token.
// Operations are fixed literals ("delete", "rename") and never contain a
// colon, so the first colon after the prefix separates the two parts.
const tokenPrefix = "t:"

// Config holds configuration for opening a journal store.
type Config struct {
	// Dir is the directory holding the BadgerDB files. Ignored when
	// InMemory is set.
	Dir string

	// InMemory keeps the journal in memory only. Useful for tests and for
	// callers that want step bookkeeping without persistence.
	InMemory bool
}

// Store is a BadgerDB-backed continuation journal. It is safe for
// concurrent use; Badger provides the transaction isolation.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the journal database.
func Open(config Config) (*Store, error) {
	var opts badger.Options
	if config.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if config.Dir == "" {
			return nil, fmt.Errorf("journal: Dir is required")
		}
		opts = badger.DefaultOptions(config.Dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("journal: failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores the pending token for (operation, path), replacing any
// previous one.
func (s *Store) Record(operation, path, token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey(operation, path), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("journal: failed to record token: %w", err)
	}
	return nil
}

// Clear removes the pending token for (operation, path). Clearing an absent
// entry is not an error.
func (s *Store) Clear(operation, path string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(tokenKey(operation, path))
	})
	if err != nil {
		return fmt.Errorf("journal: failed to clear token: %w", err)
	}
	return nil
}

// Token returns the pending token for (operation, path), or the empty
// string when none is recorded.
func (s *Store) Token(operation, path string) (string, error) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey(operation, path))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			token = string(value)
			return nil
		})
	})
	if err != nil {
		return "", fmt.Errorf("journal: failed to read token: %w", err)
	}
	return token, nil
}

// PendingOperation describes one interrupted operation found in the journal.
type PendingOperation struct {
	// Operation is the operation kind ("delete" or "rename").
	Operation string

	// Path is the operation's target path (the destination, for renames).
	Path string

	// Token is the continuation token to resume with.
	Token string
}

// Pending lists every interrupted operation in the journal.
func (s *Store) Pending() ([]PendingOperation, error) {
	var pending []PendingOperation
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tokenPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			operation, path, ok := splitTokenKey(string(item.Key()))
			if !ok {
				continue
			}
			err := item.Value(func(value []byte) error {
				pending = append(pending, PendingOperation{
					Operation: operation,
					Path:      path,
					Token:     string(value),
				})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("journal: failed to list pending operations: %w", err)
	}
	return pending, nil
}

func tokenKey(operation, path string) []byte {
	return []byte(tokenPrefix + operation + ":" + path)
}

func splitTokenKey(key string) (operation, path string, ok bool) {
	rest, found := strings.CutPrefix(key, tokenPrefix)
	if !found {
		return "", "", false
	}
	operation, path, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	return operation, path, true
}
