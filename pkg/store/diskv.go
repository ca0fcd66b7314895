package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// Document keys. Each key is stored as <key>.json under the base path.
const (
	HistoryKey = "habit_blocks"
	ConfigKey  = "habit_config"
	InitKey    = "habit_init"

	documentExt = ".json"
)

// ErrMalformed wraps documents that exist but cannot be decoded.
var ErrMalformed = errors.New("store: malformed document")

// Documents loads and saves whole JSON documents by key.
type Documents interface {
	// Load decodes the document into into. A missing document is not an
	// error: found is false and into is left as it was.
	Load(ctx context.Context, key string, into interface{}) (found bool, err error)
	// Save replaces the document.
	Save(ctx context.Context, key string, value interface{}) error
	// Erase removes the document. Erasing a missing document is not an error.
	Erase(ctx context.Context, key string) error
	// Keys lists stored document keys in order.
	Keys(ctx context.Context) []string
	// Watch streams change events until ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates Documents backed by diskv using the provided config.
func Load(cfg Config, logger *zap.Logger) (Documents, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: logger}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

func (p *persistence) Load(ctx context.Context, key string, into interface{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !p.d.Has(key) {
		return false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(val, into); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
	}
	return true, nil
}

func (p *persistence) Save(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	p.log.Debug("document saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (p *persistence) Erase(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0, 3)
	for key := range p.d.Keys(ctx.Done()) {
		if !isDocumentKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + documentExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, documentExt)
}

func isDocumentKey(key string) bool {
	return key != "" && !strings.Contains(key, ".") && !strings.HasPrefix(key, "_")
}
