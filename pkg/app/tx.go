package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/history"
	"tableflip.dev/habit/pkg/registry"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracking"
)

// Tx stages edits to the documents. Nothing is written until the function
// passed to Update returns nil.
type Tx struct {
	History  history.History
	Registry registry.Registry
	// Window is written only when SetWindow was called.
	Window tracking.Window

	orig        Snapshot
	writeWindow bool
}

// Snapshot is the state the transaction started from.
func (tx *Tx) Snapshot() Snapshot {
	return tx.orig
}

// SetWindow stages a new init document.
func (tx *Tx) SetWindow(w tracking.Window) {
	tx.Window = w
	tx.writeWindow = true
}

// Mode is the toggle mode for the staged documents.
func (tx *Tx) Mode() history.Mode {
	return Snapshot{History: tx.History, Registry: tx.Registry}.ToggleMode()
}

// MigrateIfNeeded converts legacy records once more than one habit is
// enabled. It reports whether any record changed.
func (tx *Tx) MigrateIfNeeded() bool {
	if tx.Registry.Mode != history.ModeMultiple {
		return false
	}
	return tx.liftScalars(tx.History.Owner)
}

// liftScalars files every scalar record under owner, including strays behind
// multi records that MigrateLegacyToMulti leaves alone.
func (tx *Tx) liftScalars(owner string) bool {
	if !tx.History.HasScalars() {
		return false
	}
	if tx.History.Family() == history.FamilyScalar {
		tx.History = tx.History.MigrateLegacyToMulti(owner)
		return true
	}
	out := tx.History.Clone()
	for _, day := range out.Keys() {
		if r := out.Days[day]; r.Kind() == history.KindScalar {
			out.Days[day] = r.Lift(owner)
		}
	}
	tx.History = out
	return true
}

type write struct {
	key     string
	value   interface{}
	existed bool
	prev    interface{}
}

// Update runs fn against staged copies of the documents and commits the
// result. The registry is written first, then the history, then the init
// document. When a write fails every document already written is restored.
func (s *Service) Update(ctx context.Context, fn func(tx *Tx) error) (Snapshot, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	tx := &Tx{
		History:  snap.History.Clone(),
		Registry: snap.Registry.Clone(),
		Window:   snap.Window,
		orig:     snap,
	}
	if err := fn(tx); err != nil {
		return snap, err
	}

	tx.Registry = tx.Registry.Normalize()
	// Deleting every habit is allowed; the empty config reads back as the default.
	if len(tx.Registry.Habits) > 0 {
		if err := registry.Validate(tx.Registry); err != nil {
			return snap, err
		}
	}

	writes := []write{
		{key: store.ConfigKey, value: tx.Registry, existed: snap.HasRegistry, prev: snap.Registry},
		{key: store.HistoryKey, value: tx.History, existed: snap.HasHistory, prev: snap.History},
	}
	if tx.writeWindow {
		writes = append(writes, write{key: store.InitKey, value: tx.Window, existed: snap.HasWindow, prev: snap.Window})
	}

	for i, w := range writes {
		if err := s.Documents.Save(ctx, w.key, w.value); err != nil {
			err = fmt.Errorf("app: save %s: %w", w.key, err)
			if rerr := s.rollback(ctx, writes[:i]); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return snap, err
		}
	}
	s.log().Debug("documents committed", zap.Int("documents", len(writes)), zap.Int("days", tx.History.Len()))

	return Snapshot{
		History:     tx.History.WithOwner(legacyOwner(tx.Registry)),
		Registry:    tx.Registry,
		Window:      tx.Window,
		HasHistory:  true,
		HasRegistry: true,
		HasWindow:   snap.HasWindow || tx.writeWindow,
	}, nil
}

func (s *Service) rollback(ctx context.Context, done []write) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		w := done[i]
		var err error
		if w.existed {
			err = s.Documents.Save(ctx, w.key, w.prev)
		} else {
			err = s.Documents.Erase(ctx, w.key)
		}
		if err != nil {
			s.log().Error("rollback failed", zap.String("key", w.key), zap.Error(err))
			errs = append(errs, fmt.Errorf("app: restore %s: %w", w.key, err))
			continue
		}
		s.log().Warn("restored document after failed commit", zap.String("key", w.key))
	}
	return errors.Join(errs...)
}
