package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
)

// MaxAudioBytes, yüklenebilecek en büyük ses dosyası boyutu
const MaxAudioBytes = 10 << 20

const transcribeInstruction = "Transcribe the speech in this audio recording. Reply with the transcript text only."

// Audio, yüklenen ses dosyası
type Audio struct {
	Data        []byte
	ContentType string
	Filename    string
}

// generateFunc, verilen içerikleri modele gönderir ve yanıt metnini döndürür
type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error)

// AssistantService, Gemini üzerinden soru yanıtlama ve ses çözümleme yapar.
// Her farklı API anahtarı için tek bir istemci oluşturulur ve saklanır.
type AssistantService struct {
	defaultKey string
	model      string
	generate   generateFunc

	mu      sync.Mutex
	clients map[string]*genai.Client
}

// NewAssistantService, yapılandırmadaki anahtar ve modelle bir AssistantService oluşturur.
// defaultKey boş olabilir; bu durumda oturumdaki anahtar kullanılır.
func NewAssistantService(defaultKey, model string) *AssistantService {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	s := &AssistantService{
		defaultKey: defaultKey,
		model:      model,
		clients:    map[string]*genai.Client{},
	}
	s.generate = s.generateWithGenAI
	return s
}

// HasDefaultKey reports whether an API key was configured at startup.
func (s *AssistantService) HasDefaultKey() bool {
	return s.defaultKey != ""
}

// Model returns the model name requests are sent to.
func (s *AssistantService) Model() string {
	return s.model
}

func (s *AssistantService) resolveKey(sessionKey string) (string, error) {
	if s.defaultKey != "" {
		return s.defaultKey, nil
	}
	if k := strings.TrimSpace(sessionKey); k != "" {
		return k, nil
	}
	return "", apperrors.ErrAssistantDisabled
}

// Ask, soruyu modele gönderir ve yanıt metnini döndürür
func (s *AssistantService) Ask(ctx context.Context, sessionKey, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", apperrors.ErrEmptyPrompt
	}
	key, err := s.resolveKey(sessionKey)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	text, err := s.generate(ctx, key, s.model, contents)
	if err != nil {
		logger.Error(ctx, "AssistantService.Ask - generation failed", err, zap.String("model", s.model))
		return "", apperrors.Wrap(apperrors.ErrAssistant, err)
	}
	return text, nil
}

// Transcribe, ses dosyasını modele gönderir ve konuşmanın metnini döndürür.
// Boş, çok büyük veya desteklenmeyen dosyalar çağrı yapılmadan reddedilir.
func (s *AssistantService) Transcribe(ctx context.Context, sessionKey string, audio Audio) (string, error) {
	mimeType, err := DetectAudioType(audio)
	if err != nil {
		return "", err
	}
	key, err := s.resolveKey(sessionKey)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribeInstruction),
			genai.NewPartFromBytes(audio.Data, mimeType),
		}, genai.RoleUser),
	}
	text, err := s.generate(ctx, key, s.model, contents)
	if err != nil {
		logger.Error(ctx, "AssistantService.Transcribe - transcription failed", err,
			zap.String("mime", mimeType), zap.Int("bytes", len(audio.Data)))
		return "", apperrors.Wrap(apperrors.ErrTranscription, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.Wrap(apperrors.ErrTranscription, errors.New("empty transcript"))
	}
	return text, nil
}

// DetectAudioType, dosyanın mp3, wav veya ogg olup olmadığını belirler ve modelin beklediği MIME tipini döndürür.
// Önce içerik koklanır; sonuç belirsizse bildirilen tip ve dosya uzantısına bakılır.
func DetectAudioType(audio Audio) (string, error) {
	if len(audio.Data) == 0 {
		return "", apperrors.Wrap(apperrors.ErrUnsupportedAudio, errors.New("empty audio"))
	}
	if len(audio.Data) > MaxAudioBytes {
		return "", apperrors.ErrAudioTooLarge
	}

	if mt, ok := audioMIME(http.DetectContentType(audio.Data)); ok {
		return mt, nil
	}
	if mt, ok := audioMIME(audio.ContentType); ok {
		return mt, nil
	}
	switch strings.ToLower(filepath.Ext(audio.Filename)) {
	case ".mp3":
		return "audio/mp3", nil
	case ".wav":
		return "audio/wav", nil
	case ".ogg":
		return "audio/ogg", nil
	}
	return "", apperrors.Wrap(apperrors.ErrUnsupportedAudio,
		fmt.Errorf("content type %q", audio.ContentType))
}

func audioMIME(contentType string) (string, bool) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case "audio/mpeg", "audio/mp3", "audio/mpeg3":
		return "audio/mp3", true
	case "audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave":
		return "audio/wav", true
	case "audio/ogg", "application/ogg", "audio/vorbis":
		return "audio/ogg", true
	}
	return "", false
}

func (s *AssistantService) generateWithGenAI(ctx context.Context, apiKey, model string, contents []*genai.Content) (string, error) {
	client, err := s.clientFor(ctx, apiKey)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("genai generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (s *AssistantService) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[apiKey]; ok {
		return c, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	s.clients[apiKey] = c
	return c, nil
}
