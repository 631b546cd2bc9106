package storage

import "fmt"

// Backend names accepted by OpenKV.
const (
	BackendSQLite = "sqlite"
	BackendPebble = "pebble"
)

// KV is a closable key-value store.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
	Close() error
}

// OpenKV opens the named backend at path. For sqlite path is a database
// file, for pebble a directory.
func OpenKV(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite, "":
		s, err := Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendPebble:
		s, err := OpenPebble(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
