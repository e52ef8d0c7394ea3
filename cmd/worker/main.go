// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/museumku/ai-service/internal/config"
	"github.com/museumku/ai-service/internal/db"
	"github.com/museumku/ai-service/internal/gemini"
	"github.com/museumku/ai-service/internal/jobs"
	"github.com/museumku/ai-service/internal/prompt"
	"github.com/museumku/ai-service/internal/store"
	"github.com/museumku/ai-service/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("unable to connect to database:", err)
	}
	defer pool.Close()
	q := db.New(pool)

	gen, err := gemini.New(cfg.Gemini.APIKey,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithSystemPrompt(prompt.Summarizer()),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.Gemini.Timeout}),
	)
	if err != nil {
		log.Fatalf("gemini client error: %v", err)
	}
	svc := summary.NewService(store.NewPostgres(q), gen)

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 8,
		Queues: map[string]int{
			"summaries": 10,
			"default":   5,
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskRefreshSummary, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.RefreshSummaryPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Printf("[asynq] bad payload: %v", err)
			return err
		}
		id, err := uuid.Parse(p.CollectionID)
		if err != nil {
			log.Printf("[refresh] bad collection id %q (dropping job)", p.CollectionID)
			return nil
		}

		log.Printf("[refresh] start collection=%s", id)
		start := time.Now()
		out, err := svc.Summarize(ctx, id)
		duration := time.Since(start)

		if err != nil {
			if isRetryableError(err) {
				log.Printf("[refresh] retryable error collection=%s duration=%v: %v", id, duration, err)
				return err
			}
			log.Printf("[refresh] permanent error collection=%s duration=%v: %v (dropping job)", id, duration, err)
			return nil
		}
		log.Printf("[refresh] done collection=%s origin=%s duration=%v", id, out.Origin, duration)
		return nil
	})

	log.Println("Worker running...")
	log.Fatal(srv.Run(mux))
}

// isRetryableError determines if an error should trigger a job retry.
// Unknown collections never become known by retrying; everything classified
// transient by the core is worth another attempt.
func isRetryableError(err error) bool {
	if errors.Is(err, summary.ErrNotFound) {
		return false
	}
	return errors.Is(err, summary.ErrGenerationFailed) ||
		errors.Is(err, summary.ErrPersistFailed) ||
		errors.Is(err, summary.ErrStoreUnavailable)
}
