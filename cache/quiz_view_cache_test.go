package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*QuizViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewQuizViewCache(client, time.Minute), mr
}

func TestQuizViewCacheCachesInRedis(t *testing.T) {
	c, mr := newTestCache(t)
	quizID := uuid.New()
	var calls int32
	load := func(ctx context.Context) (models.ParticipantQuizView, error) {
		atomic.AddInt32(&calls, 1)
		return models.ParticipantQuizView{ID: quizID, Title: "Numeracy"}, nil
	}

	view, err := c.Get(context.Background(), quizID, load)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Title != "Numeracy" {
		t.Fatalf("unexpected view %+v", view)
	}

	// Second call should hit cache, loader not incremented.
	if _, err := c.Get(context.Background(), quizID, load); err != nil {
		t.Fatalf("second get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", calls)
	}

	key := viewKey(quizID)
	if !mr.Exists(key) {
		t.Fatalf("expected %s to be stored", key)
	}
	ttl := mr.TTL(key)
	if ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("ttl %s outside jitter window", ttl)
	}
}

func TestQuizViewCacheInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	quizID := uuid.New()
	var calls int32
	load := func(ctx context.Context) (models.ParticipantQuizView, error) {
		atomic.AddInt32(&calls, 1)
		return models.ParticipantQuizView{ID: quizID}, nil
	}

	_, _ = c.Get(context.Background(), quizID, load)
	if err := c.Invalidate(context.Background(), quizID); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists(viewKey(quizID)) {
		t.Fatalf("expected key to be deleted")
	}
	_, _ = c.Get(context.Background(), quizID, load)
	if calls != 2 {
		t.Fatalf("expected reload after invalidate, calls=%d", calls)
	}
}

func TestQuizViewCacheDoesNotStoreErrors(t *testing.T) {
	c, mr := newTestCache(t)
	quizID := uuid.New()
	_, err := c.Get(context.Background(), quizID, func(ctx context.Context) (models.ParticipantQuizView, error) {
		return models.ParticipantQuizView{}, models.ErrQuizNotFound
	})
	if !errors.Is(err, models.ErrQuizNotFound) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if mr.Exists(viewKey(quizID)) {
		t.Fatalf("errors must not be cached")
	}
}

func TestQuizViewCacheCollapsesConcurrentMisses(t *testing.T) {
	c, _ := newTestCache(t)
	quizID := uuid.New()
	var calls int32
	release := make(chan struct{})
	load := func(ctx context.Context) (models.ParticipantQuizView, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return models.ParticipantQuizView{ID: quizID}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Get(context.Background(), quizID, load)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}
}

func TestQuizViewCacheFallsBackWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	quizID := uuid.New()
	view, err := c.Get(context.Background(), quizID, func(ctx context.Context) (models.ParticipantQuizView, error) {
		return models.ParticipantQuizView{ID: quizID, Title: "Fallback"}, nil
	})
	if err != nil {
		t.Fatalf("expected loader result despite redis failure, got %v", err)
	}
	if view.Title != "Fallback" {
		t.Fatalf("unexpected view %+v", view)
	}
}
