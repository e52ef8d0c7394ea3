package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// TranscribeRequest describes one recognition call.
type TranscribeRequest struct {
	Audio      []byte
	Encoding   string // e.g. LINEAR16, OGG_OPUS, MP3; empty or AUTO detects
	SampleRate int
	Lang       string // BCP-47 code, defaults to id-ID
}

type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (string, error)
	Close() error
}

type sttService struct {
	client *speech.Client
}

func NewTranscriber(ctx context.Context, opts ...option.ClientOption) (Transcriber, error) {
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &sttService{client: c}, nil
}

func (s *sttService) Close() error {
	return s.client.Close()
}

func (s *sttService) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	if len(req.Audio) == 0 {
		return "", errors.New("audio required")
	}

	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig(req),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: req.Audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}

	var parts []string
	for _, r := range resp.Results {
		if len(r.Alternatives) > 0 {
			parts = append(parts, r.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// recognitionConfig maps the request onto the API config. Compressed formats
// carry their own sample rate except OGG_OPUS, which requires one; the
// enhanced latest_long model noticeably improves Indonesian accuracy.
func recognitionConfig(req TranscribeRequest) *speechpb.RecognitionConfig {
	lang := req.Lang
	if lang == "" {
		lang = defaultLang
	}
	enc := encodingFromString(req.Encoding)

	cfg := &speechpb.RecognitionConfig{
		Encoding:                   enc,
		LanguageCode:               lang,
		EnableAutomaticPunctuation: true,
	}

	switch enc {
	case speechpb.RecognitionConfig_ENCODING_UNSPECIFIED:
		cfg.Model = "latest_long"
		cfg.UseEnhanced = true
	case speechpb.RecognitionConfig_OGG_OPUS:
		cfg.SampleRateHertz = int32(orDefault(req.SampleRate, 48000))
		cfg.Model = "latest_long"
		cfg.UseEnhanced = true
	case speechpb.RecognitionConfig_MP3:
		// sample rate is read from the stream
	default:
		cfg.SampleRateHertz = int32(orDefault(req.SampleRate, 16000))
	}
	return cfg
}

func encodingFromString(s string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AUTO", "ENCODING_UNSPECIFIED":
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	case "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW
	case "AMR":
		return speechpb.RecognitionConfig_AMR
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS
	case "MP3":
		return speechpb.RecognitionConfig_MP3
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// ClientOptions builds the shared client options for both speech clients.
func ClientOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}
