package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anjiri1684/aptitude_quiz/cache"
	config "github.com/anjiri1684/aptitude_quiz/configs"
	"github.com/anjiri1684/aptitude_quiz/database"
	"github.com/anjiri1684/aptitude_quiz/handlers"
	"github.com/anjiri1684/aptitude_quiz/jobs"
	"github.com/anjiri1684/aptitude_quiz/llm"
	"github.com/anjiri1684/aptitude_quiz/notifications"
	"github.com/anjiri1684/aptitude_quiz/routes"
	"github.com/anjiri1684/aptitude_quiz/services"
	"github.com/anjiri1684/aptitude_quiz/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

const monitorQueueSize = 256

func migrate() error {
	cfg := config.Load()
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Println("✅ Database migrated successfully.")
	return nil
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := database.SeedAdministrator(db, cfg); err != nil {
		return err
	}
	store := database.NewStore(db)

	completer, err := llm.New(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Question generation disabled: %v", err)
		completer = nil
	}
	if closer, ok := completer.(io.Closer); ok {
		defer closer.Close()
	}

	hub := websocket.NewHub(monitorQueueSize)
	go hub.Run(ctx)

	var archiver services.Archiver
	if cfg.CloudinaryURL != "" {
		a, err := services.NewCloudinaryArchiver(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("⚠️ Document archiving disabled: %v", err)
		} else {
			archiver = a
		}
	}

	dispatcher := services.NewInvitationDispatcher(notifications.NewMailer(cfg), cfg.FrontendURL)
	h := &handlers.Handler{
		Admins:        services.NewAdminService(store, cfg.JWTSecret),
		Quizzes:       services.NewQuizService(store, newViewCache(ctx, cfg), dispatcher),
		Answers:       services.NewAnswerService(store, hub),
		Results:       services.NewResultService(store, hub),
		Generator:     services.NewQuestionGenerator(completer),
		Documents:     services.NewDocumentService(archiver),
		Reports:       services.NewReportService(store, services.ChromePDFRenderer{}),
		Hub:           hub,
		JWTSecret:     cfg.JWTSecret,
		CloudinaryURL: cfg.CloudinaryURL,
	}

	c := cron.New()
	if err := jobs.Schedule(c, cfg.CompletionCron, store); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()
	log.Println("✅ Quiz completion job scheduled successfully.")

	app := routes.NewApp(h, routes.AppOptions{CORSOrigins: cfg.CORSOrigins, AccessLog: true})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Server is running on port %s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// newViewCache uses Redis when it is configured and reachable.
func newViewCache(ctx context.Context, cfg config.AppConfig) services.ViewCache {
	if cfg.RedisAddr == "" {
		return cache.Passthrough{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("⚠️ Redis unavailable at %s, serving quiz views uncached: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return cache.Passthrough{}
	}
	log.Println("✅ Redis connected for quiz view caching.")
	return cache.NewQuizViewCache(client, cfg.QuizCacheTTL)
}
