package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/anjiri1684/aptitude_quiz/utils"
	"github.com/robfig/cron/v3"
)

// CompletePastQuizzes closes published quizzes whose test day ended before now.
func CompletePastQuizzes(ctx context.Context, store services.CompletionStore, now time.Time) (int64, error) {
	return store.MarkQuizzesCompletedBefore(ctx, utils.StartOfDay(now))
}

// Schedule registers the completion sweep on the given cron expression.
func Schedule(c *cron.Cron, expr string, store services.CompletionStore) error {
	_, err := c.AddFunc(expr, func() {
		log.Println("Running job: CompletePastQuizzes...")
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := CompletePastQuizzes(ctx, store, time.Now())
		if err != nil {
			log.Printf("🔥 Error completing past quizzes: %v", err)
			return
		}
		if n == 0 {
			log.Println("No quizzes to complete.")
			return
		}
		log.Printf("Marked %d quiz(zes) as completed.", n)
	})
	return err
}
