// Package reminder periodically tells the learner which decks have cards due.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron"

	"github.com/conorfennell/recall/internal/study"
)

// Digest describes one deck with cards waiting for review.
type Digest struct {
	DeckID      string
	Title       string
	Due         int
	Total       int
	LastStudied *time.Time
}

// Notifier delivers a digest to the learner.
type Notifier interface {
	Notify(ctx context.Context, d Digest) error
}

// OverviewSource reports the per-deck counts a digest is built from.
type OverviewSource interface {
	Overview(ctx context.Context) (study.Overview, error)
}

// Reminder runs the digest pass on a fixed interval.
type Reminder struct {
	scheduler *gocron.Scheduler
	source    OverviewSource
	notifier  Notifier
	every     time.Duration
	timeout   time.Duration
}

// New creates a reminder that checks every interval. A nil notifier logs digests.
func New(source OverviewSource, notifier Notifier, every time.Duration) *Reminder {
	if notifier == nil {
		notifier = LogNotifier{Logger: slog.Default()}
	}
	return &Reminder{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		notifier:  notifier,
		every:     every,
		timeout:   time.Minute,
	}
}

// Start schedules the digest pass and runs it in the background.
// The first pass runs immediately.
func (r *Reminder) Start() error {
	if r.every <= 0 {
		return fmt.Errorf("invalid reminder interval %s", r.every)
	}
	if _, err := r.scheduler.Every(r.every).SingletonMode().Do(r.run); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	r.scheduler.StartAsync()
	slog.Info("Reminder started", "every", r.every.String())
	return nil
}

// Stop halts the scheduler. A pass already in flight finishes first.
func (r *Reminder) Stop() {
	r.scheduler.Stop()
	slog.Info("Reminder stopped")
}

func (r *Reminder) run() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.RunOnce(ctx); err != nil {
		slog.Error("Reminder pass failed", "error", err)
	}
}

// RunOnce sends one digest per deck that has due cards and returns how many were sent.
// A failed notification is logged and the pass continues with the next deck.
func (r *Reminder) RunOnce(ctx context.Context) (int, error) {
	ov, err := r.source.Overview(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load overview: %w", err)
	}

	var sent int
	var errs []error
	for _, d := range ov.Decks {
		if d.Due == 0 {
			continue
		}
		digest := Digest{
			DeckID:      d.DeckID,
			Title:       d.Title,
			Due:         d.Due,
			Total:       d.Total,
			LastStudied: d.LastStudied,
		}
		if err := r.notifier.Notify(ctx, digest); err != nil {
			slog.Warn("Failed to send reminder", "deck_id", d.DeckID, "error", err)
			errs = append(errs, fmt.Errorf("deck %s: %w", d.DeckID, err))
			continue
		}
		sent++
	}

	slog.Debug("Reminder pass complete", "decks", len(ov.Decks), "sent", sent, "errors", len(errs))
	return sent, errors.Join(errs...)
}

// LogNotifier writes each digest as a structured log record.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, d Digest) error {
	lastStudied := "never"
	if d.LastStudied != nil {
		lastStudied = humanize.Time(*d.LastStudied)
	}
	n.Logger.InfoContext(ctx, "Cards due for review",
		"deck_id", d.DeckID,
		"deck", d.Title,
		"due", d.Due,
		"total", d.Total,
		"last_studied", lastStudied,
	)
	return nil
}
