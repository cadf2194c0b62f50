package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Backups archives config files before they are overwritten. Each file gets
// a bucket named by its absolute path; entries are keyed by a fixed-width
// nanosecond timestamp so the cursor order is chronological.
type Backups struct {
	db  *bolt.DB
	now func() time.Time
}

// OpenBackups opens (or creates) the backup database at path.
func OpenBackups(path string) (*Backups, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("config: open backups %s: %w", path, err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("config: open backups %s: %w", path, err)
	}
	return &Backups{db: db, now: time.Now}, nil
}

func (b *Backups) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Archive stores the current content of file. A missing file is not an
// error: there is nothing to lose.
func (b *Backups) Archive(file string) error {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: archive %s: %w", file, err)
	}

	bucket := backupBucket(file)
	key := []byte(fmt.Sprintf("%020d", b.now().UnixNano()))
	return b.db.Update(func(tx *bolt.Tx) error {
		buck, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return buck.Put(key, data)
	})
}

// Latest returns the most recently archived content of file.
func (b *Backups) Latest(file string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(backupBucket(file))
		if buck == nil {
			return nil
		}
		_, v := buck.Cursor().Last()
		if v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("config: latest backup of %s: %w", file, err)
	}
	return out, out != nil, nil
}

// Count returns how many copies of file are archived.
func (b *Backups) Count(file string) (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		buck := tx.Bucket(backupBucket(file))
		if buck == nil {
			return nil
		}
		return buck.ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

func backupBucket(file string) []byte {
	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}
	return []byte(filepath.ToSlash(file))
}
