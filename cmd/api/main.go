// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/museumku/ai-service/internal/config"
	"github.com/museumku/ai-service/internal/db"
	"github.com/museumku/ai-service/internal/gemini"
	"github.com/museumku/ai-service/internal/http/routes"
	"github.com/museumku/ai-service/internal/prompt"
	"github.com/museumku/ai-service/internal/speech"
	"github.com/museumku/ai-service/internal/store"
	"github.com/museumku/ai-service/internal/summary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Printf("starting app on :%s", cfg.Port)

	// DB
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()
	queries := db.New(pool)

	// Generation client
	gen, err := gemini.New(cfg.Gemini.APIKey,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithSystemPrompt(prompt.Summarizer()),
		gemini.WithHTTPClient(&http.Client{Timeout: cfg.Gemini.Timeout}),
	)
	if err != nil {
		log.Fatalf("gemini client error: %v", err)
	}

	svc := summary.NewService(store.NewPostgres(queries), gen)

	// Speech clients are optional; the routes answer 503 when absent.
	var tts speech.Synthesizer
	var stt speech.Transcriber
	if cfg.Speech.Enabled {
		opts := speech.ClientOptions(cfg.Speech.CredentialsFile)
		if tts, err = speech.NewSynthesizer(context.Background(), opts...); err != nil {
			log.Printf("tts client unavailable: %v", err)
		}
		if stt, err = speech.NewTranscriber(context.Background(), opts...); err != nil {
			log.Printf("stt client unavailable: %v", err)
		}
	}

	// Router / server
	s := routes.New(routes.ServerOptions{
		Summaries: svc,
		TTS:       tts,
		STT:       stt,
		Cfg:       cfg,
	})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
