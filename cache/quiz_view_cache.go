package cache

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// QuizViewCache caches the participant rendering of a published quiz as JSON
// under quiz:{id}:participant_view. Redis failures fall through to the loader.
type QuizViewCache struct {
	client *redis.Client
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizViewCache(client *redis.Client, ttl time.Duration) *QuizViewCache {
	return &QuizViewCache{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuizViewCache) Get(ctx context.Context, quizID uuid.UUID, load func(ctx context.Context) (models.ParticipantQuizView, error)) (models.ParticipantQuizView, error) {
	key := viewKey(quizID)
	if view, ok := c.read(ctx, key); ok {
		return view, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have filled the key while we waited.
		if view, ok := c.read(ctx, key); ok {
			return view, nil
		}
		view, err := load(ctx)
		if err != nil {
			return models.ParticipantQuizView{}, err
		}
		data, err := json.Marshal(view)
		if err == nil {
			err = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		if err != nil {
			log.Printf("⚠️ Failed to cache view for quiz %s: %v", quizID, err)
		}
		return view, nil
	})
	if err != nil {
		return models.ParticipantQuizView{}, err
	}
	return result.(models.ParticipantQuizView), nil
}

func (c *QuizViewCache) Invalidate(ctx context.Context, quizID uuid.UUID) error {
	return c.client.Del(ctx, viewKey(quizID)).Err()
}

func (c *QuizViewCache) read(ctx context.Context, key string) (models.ParticipantQuizView, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Redis read failed for %s: %v", key, err)
		}
		return models.ParticipantQuizView{}, false
	}
	var view models.ParticipantQuizView
	if err := json.Unmarshal(data, &view); err != nil {
		return models.ParticipantQuizView{}, false
	}
	return view, true
}

func (c *QuizViewCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func viewKey(quizID uuid.UUID) string {
	return "quiz:" + quizID.String() + ":participant_view"
}

// Passthrough is used when no Redis is configured.
type Passthrough struct{}

func (Passthrough) Get(ctx context.Context, quizID uuid.UUID, load func(ctx context.Context) (models.ParticipantQuizView, error)) (models.ParticipantQuizView, error) {
	return load(ctx)
}

func (Passthrough) Invalidate(ctx context.Context, quizID uuid.UUID) error {
	return nil
}
