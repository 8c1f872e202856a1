package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

type recordingStore struct {
	cutoff time.Time
	calls  int
}

func (r *recordingStore) MarkQuizzesCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.calls++
	r.cutoff = cutoff
	return 2, nil
}

func TestCompletePastQuizzesUsesStartOfDay(t *testing.T) {
	store := &recordingStore{}
	now := time.Date(2026, 10, 14, 17, 45, 0, 0, time.UTC)

	n, err := CompletePastQuizzes(context.Background(), store, now)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected store count to be returned, got %d", n)
	}
	want := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	if !store.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, store.cutoff)
	}
}

func TestScheduleRejectsInvalidExpression(t *testing.T) {
	c := cron.New()
	if err := Schedule(c, "not a cron expression", &recordingStore{}); err == nil {
		t.Fatalf("expected invalid expression to be rejected")
	}
	if err := Schedule(c, "*/5 * * * *", &recordingStore{}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Fatalf("expected one scheduled entry, got %d", len(c.Entries()))
	}
}
