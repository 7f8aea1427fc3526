package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/craftedcodex/senthrix/pkg/store"
)

// snapshotSchema describes the on-disk snapshot document. Load rejects
// anything that does not validate, so a corrupt or foreign file surfaces
// as a storage failure instead of half-parsed state.
const snapshotSchema = `{
	"type": "object",
	"required": ["chatCounter", "chats"],
	"properties": {
		"chatCounter": {"type": "integer", "minimum": 0},
		"chats": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["title", "messages", "createdAt"],
				"properties": {
					"title": {"type": "string"},
					"createdAt": {"type": "string"},
					"messages": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["text", "isUser"],
							"properties": {
								"text": {"type": "string"},
								"isUser": {"type": "boolean"}
							}
						}
					}
				}
			}
		}
	}
}`

// FileGateway persists snapshots as a single JSON file.
type FileGateway struct {
	path         string
	schemaLoader gojsonschema.JSONLoader

	mu        sync.Mutex
	lastWrite time.Time
}

// NewFileGateway creates a gateway writing to the given file path. The
// parent directory is created if needed.
func NewFileGateway(path string) (*FileGateway, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	return &FileGateway{
		path:         path,
		schemaLoader: gojsonschema.NewStringLoader(snapshotSchema),
	}, nil
}

// Path returns the snapshot file path.
func (g *FileGateway) Path() string {
	return g.path
}

// LastWrite returns the time of the gateway's most recent successful
// save. The snapshot watcher uses it to tell our own writes apart from
// external ones.
func (g *FileGateway) LastWrite() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastWrite
}

// Save writes the snapshot atomically via a temp file rename.
func (g *FileGateway) Save(snap store.Snapshot) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tempPath := g.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tempPath, g.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	g.lastWrite = time.Now()

	log.Debug().Str("path", g.path).Int("bytes", len(data)).Msg("Snapshot saved")

	return nil
}

// Load reads and validates the snapshot file. A missing file returns
// ErrNotFound.
func (g *FileGateway) Load() (store.Snapshot, error) {
	var snap store.Snapshot

	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, ErrNotFound
		}
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}

	result, err := gojsonschema.Validate(g.schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return snap, fmt.Errorf("failed to validate snapshot: %w", err)
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Warn().Str("path", g.path).Str("field", desc.Field()).Msg(desc.Description())
		}
		return snap, fmt.Errorf("snapshot does not match schema")
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	log.Debug().Str("path", g.path).Int("chats", len(snap.Chats)).Msg("Snapshot loaded")

	return snap, nil
}

// Close is a no-op for the file gateway.
func (g *FileGateway) Close() error {
	return nil
}
