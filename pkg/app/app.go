package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/history"
	"tableflip.dev/habit/pkg/registry"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracking"
)

// Service provides high-level operations over the habit documents.
// It wraps persistence and the core packages so every CLI verb shares logic.
type Service struct {
	Documents store.Documents
	Logger    *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

var (
	ErrNoDocuments = errors.New("app: no persistence configured")
	ErrFutureDay   = errors.New("app: cannot log a day after today")
)

// Snapshot is every document as loaded, with fallbacks applied.
type Snapshot struct {
	History  history.History
	Registry registry.Registry
	Window   tracking.Window

	HasHistory  bool
	HasRegistry bool
	HasWindow   bool
}

// ToggleMode is the mode edits use: multiple whenever either the registry or
// the stored data already is.
func (s Snapshot) ToggleMode() history.Mode {
	if s.Registry.Mode == history.ModeMultiple || s.History.Family() == history.FamilyMulti {
		return history.ModeMultiple
	}
	return history.ModeSingle
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Documents == nil {
		return nil, ErrNoDocuments
	}
	return s.Documents.Watch(ctx)
}

// Load reads all documents. Missing documents and documents that fail to
// decode are replaced by their defaults; only storage errors are returned.
func (s *Service) Load(ctx context.Context) (Snapshot, error) {
	if s.Documents == nil {
		return Snapshot{}, ErrNoDocuments
	}
	var snap Snapshot
	var err error

	snap.Registry = registry.Default()
	var reg registry.Registry
	if snap.HasRegistry, err = s.load(ctx, store.ConfigKey, &reg); err != nil {
		return Snapshot{}, err
	}
	if snap.HasRegistry {
		if verr := registry.Validate(reg); verr != nil {
			s.log().Warn("using default habit config", zap.Error(verr))
			snap.HasRegistry = false
		} else {
			snap.Registry = reg.Normalize()
		}
	}

	snap.History = history.New()
	var h history.History
	if snap.HasHistory, err = s.load(ctx, store.HistoryKey, &h); err != nil {
		return Snapshot{}, err
	}
	if snap.HasHistory {
		if len(h.Dropped) > 0 {
			s.log().Warn("skipping unreadable history days", zap.Strings("keys", h.Dropped))
		}
		snap.History = h
	}
	snap.History = snap.History.WithOwner(legacyOwner(snap.Registry))

	snap.Window = tracking.Fallback(s.now())
	var w tracking.Window
	if snap.HasWindow, err = s.load(ctx, store.InitKey, &w); err != nil {
		return Snapshot{}, err
	}
	if snap.HasWindow && w.Configured() {
		snap.Window = w
	}
	return snap, nil
}

// load reports found=false for a malformed document so the caller keeps its
// default.
func (s *Service) load(ctx context.Context, key string, into interface{}) (bool, error) {
	found, err := s.Documents.Load(ctx, key, into)
	if err != nil {
		if errors.Is(err, store.ErrMalformed) {
			s.log().Warn("ignoring malformed document", zap.String("key", key), zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("app: load %s: %w", key, err)
	}
	return found, nil
}

// legacyOwner is the habit that untagged single-habit records belong to: the
// oldest registered habit.
func legacyOwner(r registry.Registry) string {
	if names := r.Names(); len(names) > 0 {
		return names[0]
	}
	return registry.DefaultHabitName
}

// resolve maps a user parameter to a registered habit. An empty parameter
// picks the current habit; anything else must name or index one.
func resolve(r registry.Registry, param string) (string, error) {
	if param != "" {
		return r.Lookup(param)
	}
	name := r.Resolve("")
	if !r.Has(name) {
		return "", fmt.Errorf("%w: %q", registry.ErrUnknownHabit, name)
	}
	return name, nil
}
