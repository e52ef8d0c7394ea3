// Package speech wraps the Google Cloud text-to-speech and speech-to-text
// APIs behind small interfaces so the HTTP layer can be tested without a
// network.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/museumku/ai-service/internal/prompt"
)

const defaultLang = "id-ID"

// SynthesizeRequest describes one synthesis call.
type SynthesizeRequest struct {
	Text  string
	Lang  string // BCP-47 code, defaults to id-ID
	Voice string // optional voice name
	OGG   bool   // OGG_OPUS when true, MP3 otherwise
}

type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error)
	Close() error
}

type ttsService struct {
	client *texttospeech.Client
}

func NewSynthesizer(ctx context.Context, opts ...option.ClientOption) (Synthesizer, error) {
	c, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("texttospeech client: %w", err)
	}
	return &ttsService{client: c}, nil
}

func (s *ttsService) Close() error {
	return s.client.Close()
}

func (s *ttsService) Synthesize(ctx context.Context, req SynthesizeRequest) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("text required")
	}
	lang := req.Lang
	if lang == "" {
		lang = defaultLang
	}

	encoding := ttspb.AudioEncoding_MP3
	if req.OGG {
		encoding = ttspb.AudioEncoding_OGG_OPUS
	}

	resp, err := s.client.SynthesizeSpeech(ctx, &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Ssml{Ssml: fmt.Sprintf(prompt.TTSSSMLTemplate, req.Text)},
		},
		Voice: voiceParams(lang, req.Voice),
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding: encoding,
			// SSML prosody overrides these base values.
			SpeakingRate: 1.0,
			Pitch:        0.0,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.AudioContent, nil
}

// voiceParams picks a Wavenet voice for Indonesian when none is requested.
func voiceParams(lang, voice string) *ttspb.VoiceSelectionParams {
	if voice == "" && strings.HasPrefix(lang, "id") {
		voice = "id-ID-Wavenet-A"
	}
	return &ttspb.VoiceSelectionParams{LanguageCode: lang, Name: voice}
}
