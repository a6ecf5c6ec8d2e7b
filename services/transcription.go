package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	appconfig "health_record_ms/config"

	speech "google.golang.org/api/speech/v1"
)

// ITranscriptionService turns an uploaded voice memo into text.
type ITranscriptionService interface {
	TranscribeURL(ctx context.Context, url string, contentType string) (string, error)
}

type TranscriptionService struct {
	cfg appconfig.Speech
}

func NewTranscriptionService(cfg appconfig.Speech) ITranscriptionService {
	return &TranscriptionService{cfg: cfg}
}

func encodingFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "ogg"):
		return "OGG_OPUS"
	case strings.Contains(contentType, "flac"):
		return "FLAC"
	case strings.Contains(contentType, "wav"):
		return "LINEAR16"
	default:
		return "ENCODING_UNSPECIFIED"
	}
}

func (s *TranscriptionService) TranscribeURL(ctx context.Context, url string, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch audio: unexpected status %d", resp.StatusCode)
	}
	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	svc, err := speech.NewService(ctx)
	if err != nil {
		return "", err
	}

	lang := s.cfg.LanguageCode
	if lang == "" {
		lang = "en-US"
	}
	recognizeResp, err := svc.Speech.Recognize(&speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        encodingFor(contentType),
			LanguageCode:    lang,
			SampleRateHertz: int64(s.cfg.SampleRateHz),
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}).Do()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, result := range recognizeResp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(result.Alternatives[0].Transcript)
	}
	if sb.Len() == 0 {
		return "", errors.New("no speech recognized")
	}
	return sb.String(), nil
}
