package countdown

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Devdeep8/let-s-do-it/internal/model"
	"github.com/Devdeep8/let-s-do-it/internal/store"
)

// Store keys for the persisted target instants.
const (
	BirthdayKey   = "birthdayTarget"
	DisciplineKey = "disciplineTarget"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Compute breaks down the time left from now until target. A target in the
// past, or the zero time, yields an all-zero result.
func Compute(target, now time.Time) model.TimeRemaining {
	if target.IsZero() {
		return model.TimeRemaining{}
	}

	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return model.TimeRemaining{}
	}

	return model.TimeRemaining{
		Days:    diff / msPerDay,
		Hours:   (diff % msPerDay) / msPerHour,
		Minutes: (diff % msPerHour) / msPerMinute,
		Seconds: (diff % msPerMinute) / msPerSecond,

		TotalHours:   diff / msPerHour,
		TotalMinutes: diff / msPerMinute,
		TotalSeconds: diff / msPerSecond,
	}
}

// Progress returns how far now is between start and target as a percentage
// clamped to [0, 100].
func Progress(start, target, now time.Time) float64 {
	span := target.Sub(start)
	if span <= 0 {
		if !now.Before(target) {
			return 100
		}
		return 0
	}

	pct := float64(now.Sub(start)) / float64(span) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// ParseInstant parses an RFC 3339 instant. Malformed input yields the zero
// time, which Compute treats as expired.
func ParseInstant(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatInstant renders t as the absolute UTC string that is persisted.
func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ResolveTarget returns the countdown target stored under key, persisting
// literal on first run. When sync is true, a stored instant that differs
// from literal (or cannot be parsed) is replaced by literal.
func ResolveTarget(
	ctx context.Context,
	s store.Store,
	key string,
	literal string,
	sync bool,
) (time.Time, error) {
	want, err := time.Parse(time.RFC3339, literal)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing target literal for %s: %w", key, err)
	}

	stored, ok, err := s.Get(ctx, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("reading target %s: %w", key, err)
	}

	if ok {
		got := ParseInstant(stored)
		if got.IsZero() {
			log.Printf("countdown: stored %s %q is not a valid instant", key, stored)
		}
		if !sync || got.Equal(want) {
			return got, nil
		}
		log.Printf("countdown: replacing stored %s %q with %s", key, stored, formatInstant(want))
	}

	if err := s.Set(ctx, key, formatInstant(want)); err != nil {
		return time.Time{}, fmt.Errorf("persisting target %s: %w", key, err)
	}
	return want, nil
}

// Targets holds the instants resolved once at session start and passed to
// every countdown computation.
type Targets struct {
	Birthday        time.Time
	DisciplineStart time.Time
	Discipline      time.Time
}

// ResolveTargets resolves both configured countdown targets against s.
func ResolveTargets(
	ctx context.Context,
	s store.Store,
	cfg model.CountdownConfig,
) (Targets, error) {
	birthday, err := ResolveTarget(ctx, s, BirthdayKey, cfg.Birthday.Target, cfg.SyncTargets)
	if err != nil {
		return Targets{}, err
	}
	discipline, err := ResolveTarget(ctx, s, DisciplineKey, cfg.Discipline.Target, cfg.SyncTargets)
	if err != nil {
		return Targets{}, err
	}
	return Targets{
		Birthday:        birthday,
		DisciplineStart: ParseInstant(cfg.Discipline.Start),
		Discipline:      discipline,
	}, nil
}
