package localstore

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names, one per mirrored collection plus the repair queue.
const (
	BucketProperties = "properties"
	BucketClients    = "clients"
	BucketCampaigns  = "campaigns"
	BucketUsers      = "users"
	BucketRepairs    = "repairs"
)

var buckets = []string{
	BucketProperties,
	BucketClients,
	BucketCampaigns,
	BucketUsers,
	BucketRepairs,
}

// Store wraps BoltDB to keep a durable local mirror of the remote
// collections so the application stays usable while the remote store is
// unreachable.
type Store struct {
	db *bolt.DB
}

// Open initializes the BoltDB file and ensures all collection buckets exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Put stores one record under its id.
func (s *Store) Put(bucket, id string, payload []byte) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(id), payload)
	})
}

// Get returns one record by id, or nil when absent.
func (s *Store) Get(bucket, id string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var payload []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucket)).Get([]byte(id)); v != nil {
			payload = append([]byte(nil), v...)
		}
		return nil
	})
	return payload, err
}

// List returns every record in the bucket in key order.
func (s *Store) List(bucket string) ([][]byte, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	var records [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(_, v []byte) error {
			records = append(records, append([]byte(nil), v...))
			return nil
		})
	})
	return records, err
}

// Delete removes one record by id. Deleting an absent id is a no-op.
func (s *Store) Delete(bucket, id string) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(id))
	})
}

// ReplaceAll atomically swaps the bucket's contents for the given records,
// mirroring one full remote read.
func (s *Store) ReplaceAll(bucket string, records map[string][]byte) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucket)); err != nil {
			return err
		}
		b, err := tx.CreateBucket([]byte(bucket))
		if err != nil {
			return err
		}
		for id, payload := range records {
			if err := b.Put([]byte(id), payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// Size returns the number of records in the bucket.
func (s *Store) Size(bucket string) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucket)).Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}
