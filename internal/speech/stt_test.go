package speech

import (
	"testing"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

func TestEncodingFromString(t *testing.T) {
	tests := map[string]speechpb.RecognitionConfig_AudioEncoding{
		"":            speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		"AUTO":        speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		"auto":        speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
		"LINEAR16":    speechpb.RecognitionConfig_LINEAR16,
		"linear16":    speechpb.RecognitionConfig_LINEAR16,
		" OGG_OPUS ":  speechpb.RecognitionConfig_OGG_OPUS,
		"MP3":         speechpb.RecognitionConfig_MP3,
		"WEBM_OPUS":   speechpb.RecognitionConfig_WEBM_OPUS,
		"not-a-codec": speechpb.RecognitionConfig_ENCODING_UNSPECIFIED,
	}
	for in, want := range tests {
		if got := encodingFromString(in); got != want {
			t.Errorf("encodingFromString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRecognitionConfigAutoDetect(t *testing.T) {
	cfg := recognitionConfig(TranscribeRequest{Encoding: "AUTO"})
	if cfg.Encoding != speechpb.RecognitionConfig_ENCODING_UNSPECIFIED {
		t.Errorf("expected unspecified encoding, got %v", cfg.Encoding)
	}
	if cfg.LanguageCode != "id-ID" {
		t.Errorf("expected default language id-ID, got %s", cfg.LanguageCode)
	}
	if cfg.SampleRateHertz != 0 {
		t.Errorf("auto-detect must not force a sample rate, got %d", cfg.SampleRateHertz)
	}
	if cfg.Model != "latest_long" || !cfg.UseEnhanced {
		t.Error("auto-detect should use the enhanced latest_long model")
	}
	if !cfg.EnableAutomaticPunctuation {
		t.Error("automatic punctuation should be on")
	}
}

func TestRecognitionConfigOggOpus(t *testing.T) {
	cfg := recognitionConfig(TranscribeRequest{Encoding: "OGG_OPUS"})
	if cfg.SampleRateHertz != 48000 {
		t.Errorf("OGG_OPUS requires a sample rate, expected default 48000, got %d", cfg.SampleRateHertz)
	}

	cfg = recognitionConfig(TranscribeRequest{Encoding: "OGG_OPUS", SampleRate: 24000})
	if cfg.SampleRateHertz != 24000 {
		t.Errorf("expected explicit sample rate 24000, got %d", cfg.SampleRateHertz)
	}
}

func TestRecognitionConfigMP3(t *testing.T) {
	cfg := recognitionConfig(TranscribeRequest{Encoding: "MP3", SampleRate: 44100})
	if cfg.SampleRateHertz != 0 {
		t.Errorf("MP3 sample rate comes from the stream, got %d", cfg.SampleRateHertz)
	}
}

func TestRecognitionConfigLinear16(t *testing.T) {
	cfg := recognitionConfig(TranscribeRequest{Encoding: "LINEAR16", Lang: "en-US"})
	if cfg.SampleRateHertz != 16000 {
		t.Errorf("expected default 16000 for LINEAR16, got %d", cfg.SampleRateHertz)
	}
	if cfg.LanguageCode != "en-US" {
		t.Errorf("expected explicit language en-US, got %s", cfg.LanguageCode)
	}
}

func TestVoiceParams(t *testing.T) {
	if v := voiceParams("id-ID", ""); v.Name != "id-ID-Wavenet-A" {
		t.Errorf("expected Wavenet default for Indonesian, got %q", v.Name)
	}
	if v := voiceParams("en-US", ""); v.Name != "" {
		t.Errorf("expected no default voice outside Indonesian, got %q", v.Name)
	}
	if v := voiceParams("id-ID", "id-ID-Wavenet-B"); v.Name != "id-ID-Wavenet-B" {
		t.Errorf("explicit voice must win, got %q", v.Name)
	}
}
