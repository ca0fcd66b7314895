package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/habit/pkg/datekey"
	"tableflip.dev/habit/pkg/history"
	"tableflip.dev/habit/pkg/registry"
)

// AddHabits registers new habits. Legacy records move into the multi-habit
// format as soon as a second habit is enabled.
func (s *Service) AddHabits(ctx context.Context, names ...string) (registry.Registry, error) {
	now := s.now()
	snap, err := s.Update(ctx, func(tx *Tx) error {
		for i, name := range names {
			// Offset keeps creation order stable when several names share a call.
			reg, err := tx.Registry.Add(name, now.Add(time.Duration(i)*time.Millisecond))
			if err != nil {
				return err
			}
			tx.Registry = reg
		}
		if tx.MigrateIfNeeded() {
			s.log().Info("migrated legacy history", zap.String("habit", tx.History.Owner))
		}
		return nil
	})
	return snap.Registry, err
}

// RenameHabit renames a habit in the config and in every recorded day.
func (s *Service) RenameHabit(ctx context.Context, param, name string) (registry.Registry, error) {
	snap, err := s.Update(ctx, func(tx *Tx) error {
		old, err := tx.Registry.Lookup(param)
		if err != nil {
			return err
		}
		reg, err := tx.Registry.Rename(old, name)
		if err != nil {
			return err
		}
		clean, _ := registry.CleanName(name)
		tx.Registry = reg
		tx.History = tx.History.RenameHabit(old, clean)
		return nil
	})
	return snap.Registry, err
}

// DeleteHabits removes habits and their recorded values.
func (s *Service) DeleteHabits(ctx context.Context, params ...string) (registry.Registry, error) {
	snap, err := s.Update(ctx, func(tx *Tx) error {
		for _, param := range params {
			name, err := tx.Registry.Lookup(param)
			if err != nil {
				return err
			}
			reg, err := tx.Registry.Delete(name)
			if err != nil {
				return err
			}
			tx.Registry = reg
			tx.History = tx.History.DeleteHabit(name)
		}
		return nil
	})
	return snap.Registry, err
}

// SetEnabled enables or disables habits.
func (s *Service) SetEnabled(ctx context.Context, enabled bool, params ...string) (registry.Registry, error) {
	snap, err := s.Update(ctx, func(tx *Tx) error {
		for _, param := range params {
			name, err := tx.Registry.Lookup(param)
			if err != nil {
				return err
			}
			reg, err := tx.Registry.SetEnabled(name, enabled)
			if err != nil {
				return err
			}
			tx.Registry = reg
		}
		tx.MigrateIfNeeded()
		return nil
	})
	return snap.Registry, err
}

// Select makes a habit current.
func (s *Service) Select(ctx context.Context, param string) (registry.Registry, error) {
	snap, err := s.Update(ctx, func(tx *Tx) error {
		name, err := tx.Registry.Lookup(param)
		if err != nil {
			return err
		}
		reg, err := tx.Registry.Select(name)
		if err != nil {
			return err
		}
		tx.Registry = reg
		return nil
	})
	return snap.Registry, err
}

// LogResult is the state of one habit on one day after an edit.
type LogResult struct {
	Habit string      `json:"habit"`
	Day   datekey.Key `json:"date"`
	Done  bool        `json:"done"`
}

// Log records a habit on day. A nil value toggles the current state.
func (s *Service) Log(ctx context.Context, param string, day time.Time, value *bool) (LogResult, error) {
	today := datekey.Day(s.now())
	if datekey.Day(day).After(today) {
		return LogResult{}, ErrFutureDay
	}
	key := datekey.Format(day)
	var result LogResult
	_, err := s.Update(ctx, func(tx *Tx) error {
		name, err := resolve(tx.Registry, param)
		if err != nil {
			return err
		}
		if h, ok := tx.Registry.Habits[name]; ok && !h.Enabled {
			return fmt.Errorf("%w: %q", registry.ErrHabitDisabled, name)
		}
		mode := tx.Mode()
		if name != tx.History.Owner {
			// Untagged records belong to the owner only.
			mode = history.ModeMultiple
		}
		if value == nil {
			tx.History = tx.History.Toggle(key, name, mode)
		} else {
			tx.History = tx.History.Set(key, name, mode, *value)
		}
		result = LogResult{Habit: name, Day: key, Done: tx.History.IsCompleted(key, name)}
		return nil
	})
	if err != nil {
		return LogResult{}, err
	}
	s.log().Debug("logged habit", zap.String("habit", result.Habit), zap.String("day", string(key)), zap.Bool("done", result.Done))
	return result, nil
}
