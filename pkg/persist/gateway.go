package persist

import (
	"errors"

	"github.com/craftedcodex/senthrix/pkg/store"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("no stored snapshot")

// Gateway abstracts snapshot persistence (JSON file, SQLite, etc.).
type Gateway interface {
	Save(snap store.Snapshot) error
	Load() (store.Snapshot, error)
	Close() error
}
