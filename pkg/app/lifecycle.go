package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/registry"
	"tableflip.dev/habit/pkg/store"
	"tableflip.dev/habit/pkg/tracking"
)

// MaxSetupHabits caps how many habits setup accepts at once.
const MaxSetupHabits = 5

// ConfirmPhrase must be passed to Wipe.
const ConfirmPhrase = "DELETE"

var (
	ErrTooManyHabits = fmt.Errorf("app: setup accepts at most %d habits", MaxSetupHabits)
	ErrNotConfirmed  = errors.New("app: wiping all data requires the confirmation phrase " + ConfirmPhrase)
)

// SetupOptions configures a fresh tracker.
type SetupOptions struct {
	// Start is today, year, month or a YYYY-MM-DD date.
	Start string
	// Habits defaults to the single default habit.
	Habits []string
}

// Setup writes a new habit config and tracking window. Existing history is
// kept; legacy records are migrated when more than one habit is configured.
func (s *Service) Setup(ctx context.Context, opts SetupOptions) (Snapshot, error) {
	now := s.now()
	start, err := tracking.ParseStart(opts.Start, now)
	if err != nil {
		return Snapshot{}, err
	}
	names := opts.Habits
	if len(names) == 0 {
		names = []string{registry.DefaultHabitName}
	}
	if len(names) > MaxSetupHabits {
		return Snapshot{}, ErrTooManyHabits
	}

	return s.Update(ctx, func(tx *Tx) error {
		reg := registry.Empty()
		for i, name := range names {
			next, err := reg.Add(name, now.Add(time.Duration(i)*time.Millisecond))
			if err != nil {
				return err
			}
			reg = next
		}
		// Legacy records keep the habit they were logged for, even when
		// that habit is not part of the new config.
		if owner := tx.History.Owner; !reg.Has(owner) && tx.liftScalars(owner) {
			s.log().Info("migrated legacy history", zap.String("habit", owner))
		}
		tx.Registry = reg
		if tx.MigrateIfNeeded() {
			s.log().Info("migrated legacy history", zap.String("habit", tx.History.Owner))
		}
		tx.SetWindow(tracking.New(start, now))
		return nil
	})
}

// Migrate converts legacy single-habit records to the multi-habit format. It
// reports whether anything was converted.
func (s *Service) Migrate(ctx context.Context) (bool, error) {
	migrated := false
	_, err := s.Update(ctx, func(tx *Tx) error {
		migrated = tx.liftScalars(tx.History.Owner)
		return nil
	})
	if err != nil {
		return false, err
	}
	return migrated, nil
}

// Reset restores default settings, keeping habits and history.
func (s *Service) Reset(ctx context.Context) (registry.Registry, error) {
	snap, err := s.Update(ctx, func(tx *Tx) error {
		tx.Registry = tx.Registry.Reset()
		return nil
	})
	return snap.Registry, err
}

// Wipe erases every document. confirm must equal ConfirmPhrase.
func (s *Service) Wipe(ctx context.Context, confirm string) error {
	if confirm != ConfirmPhrase {
		return ErrNotConfirmed
	}
	if s.Documents == nil {
		return ErrNoDocuments
	}
	var errs []error
	for _, key := range []string{store.HistoryKey, store.ConfigKey, store.InitKey} {
		if err := s.Documents.Erase(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.log().Info("all habit data erased")
	return nil
}
