package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/museumku/ai-service/internal/config"
	appmw "github.com/museumku/ai-service/internal/http/middleware"
	"github.com/museumku/ai-service/internal/jobs"
	"github.com/museumku/ai-service/internal/speech"
	"github.com/museumku/ai-service/internal/summary"
)

// maxAudioUpload bounds the /stt request body.
const maxAudioUpload = 32 << 20

// SummaryService is the single operation the routes need from the core.
type SummaryService interface {
	Summarize(ctx context.Context, id uuid.UUID) (summary.Outcome, error)
}

type Server struct {
	Router           *chi.Mux
	Summaries        SummaryService
	TTS              speech.Synthesizer
	STT              speech.Transcriber
	RedisAddr        string
	SummarizeTimeout time.Duration
}

type ServerOptions struct {
	Summaries SummaryService
	TTS       speech.Synthesizer
	STT       speech.Transcriber
	Cfg       config.Config
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.Cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", appmw.APIKeyHeader},
		MaxAge:         300,
	}))

	s := &Server{
		Router:           r,
		Summaries:        opts.Summaries,
		TTS:              opts.TTS,
		STT:              opts.STT,
		RedisAddr:        opts.Cfg.RedisAddr,
		SummarizeTimeout: opts.Cfg.Gemini.Timeout,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Printf("Error writing health check response: %v", err)
		}
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(appmw.RequireAPIKey(opts.Cfg.APIKey))
		api.Post("/summarize/{collectionID}", s.handleSummarize)
		api.Post("/collections/{collectionID}/refresh", s.handleRefresh)
		api.Post("/tts", s.handleTTS)
		api.Post("/stt", s.handleSTT)
	})

	return s
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "collectionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid collection id")
		return
	}

	ctx := r.Context()
	if s.SummarizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SummarizeTimeout)
		defer cancel()
	}

	out, err := s.Summaries.Summarize(ctx, id)
	switch {
	case errors.Is(err, summary.ErrNotFound):
		writeError(w, http.StatusNotFound, "Collection not found")
		return
	case err != nil:
		log.Printf("summarize failed collection=%s: %v", id, err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": out.Summary})
}

// handleRefresh queues a background regeneration so operators can pre-warm
// a summary without waiting on the request path.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "collectionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid collection id")
		return
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: s.RedisAddr})
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Error closing asynq client: %v", closeErr)
		}
	}()

	payload, _ := json.Marshal(jobs.RefreshSummaryPayload{CollectionID: id.String()})
	task := asynq.NewTask(jobs.TaskRefreshSummary, payload)
	info, err := client.Enqueue(task,
		asynq.Queue("summaries"),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		log.Printf("[asynq] enqueue failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to queue refresh")
		return
	}
	log.Printf("[asynq] enqueued task: id=%s queue=%s", info.ID, info.Queue)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh queued"})
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	if s.TTS == nil {
		writeError(w, http.StatusServiceUnavailable, "speech synthesis not configured")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "bad form")
		return
	}
	text := strings.TrimSpace(r.Form.Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}
	format := strings.ToLower(r.Form.Get("format"))
	if format == "" {
		format = "ogg"
	}

	audio, err := s.TTS.Synthesize(r.Context(), speech.SynthesizeRequest{
		Text:  text,
		Lang:  r.Form.Get("lang"),
		Voice: r.Form.Get("voice"),
		OGG:   format == "ogg",
	})
	if err != nil {
		log.Printf("tts failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	media := "audio/mpeg"
	if format == "ogg" {
		media = "audio/ogg"
	}
	w.Header().Set("Content-Type", media)
	if _, err := w.Write(audio); err != nil {
		log.Printf("Error writing audio response: %v", err)
	}
}

func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	if s.STT == nil {
		writeError(w, http.StatusServiceUnavailable, "speech recognition not configured")
		return
	}
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		writeError(w, http.StatusBadRequest, "bad multipart form")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close() //nolint:errcheck

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	sampleRate := 0
	if v := r.FormValue("sample_rate"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			sampleRate = n
		}
	}

	text, err := s.STT.Transcribe(r.Context(), speech.TranscribeRequest{
		Audio:      audio,
		Encoding:   r.FormValue("encoding"),
		SampleRate: sampleRate,
		Lang:       r.FormValue("lang"),
	})
	if err != nil {
		log.Printf("stt failed: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
