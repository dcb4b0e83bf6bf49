package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rooftopgarden/internal/apperrors"
	"rooftopgarden/internal/logger"
	"rooftopgarden/internal/metrics"
	"rooftopgarden/internal/services"
	"rooftopgarden/internal/session"
)

func (h *Handler) assistantReady(s *session.Session) bool {
	return h.assistant.HasDefaultKey() || s.APIKey != ""
}

func (h *Handler) renderChatbot(c *gin.Context, status int, data gin.H) {
	s := session.From(c)
	base := gin.H{
		"assistantReady": h.assistantReady(s),
		"question":       "",
		"transcript":     "",
		"answer":         "",
	}
	for k, v := range data {
		base[k] = v
	}
	h.render(c, status, "chatbot.html", "Chatbot", base)
}

// failChatbot, hatayı sayfada gösterir. Dış servis hataları loglanır.
func (h *Handler) failChatbot(c *gin.Context, kind string, err error, data gin.H) {
	outcome := metrics.OutcomeRejected
	if apperrors.StatusCode(err) >= http.StatusInternalServerError && !errors.Is(err, apperrors.ErrAssistantDisabled) {
		outcome = metrics.OutcomeError
		logger.Error(c, "Handler.Chatbot - "+kind+" failed", err)
	}
	h.metrics.AssistantCall.WithLabelValues(kind, outcome).Inc()

	msg := "⚠️ " + apperrors.UserMessage(err)
	if errors.Is(err, apperrors.ErrAssistant) {
		msg = "⚠️ Error: Could not process your request."
	}
	session.From(c).AddFlash(flashKind(err), msg)
	h.renderChatbot(c, apperrors.StatusCode(err), data)
}

// ChatbotPage, soru formunu, ses yükleme formunu ve gerekirse API anahtarı formunu gösterir
func (h *Handler) ChatbotPage(c *gin.Context) {
	s := session.From(c)
	if !h.assistantReady(s) {
		s.AddFlash(session.FlashWarning, "Please enter a valid API key to use the chatbot.")
	}
	h.renderChatbot(c, http.StatusOK, nil)
}

// HandleAsk, soruyu modele gönderir ve yanıtı gösterir
func (h *Handler) HandleAsk(c *gin.Context) {
	s := session.From(c)
	question := c.PostForm("question")

	answer, err := h.assistant.Ask(c, s.APIKey, question)
	if err != nil {
		h.failChatbot(c, "ask", err, gin.H{"question": question})
		return
	}
	h.metrics.AssistantCall.WithLabelValues("ask", metrics.OutcomeOK).Inc()
	h.renderChatbot(c, http.StatusOK, gin.H{
		"question": question,
		"answer":   answer,
	})
}

// HandleTranscribe, yüklenen ses dosyasını metne çevirir; ask=1 ise metni modele de sorar
func (h *Handler) HandleTranscribe(c *gin.Context) {
	s := session.From(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxAudioBytes+1<<20)

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.failChatbot(c, "transcribe", apperrors.ErrAudioTooLarge, nil)
			return
		}
		h.failChatbot(c, "transcribe", apperrors.Wrap(apperrors.ErrUnsupportedAudio, err), nil)
		return
	}
	defer file.Close()

	if header.Size > services.MaxAudioBytes {
		h.failChatbot(c, "transcribe", apperrors.ErrAudioTooLarge, nil)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, services.MaxAudioBytes+1))
	if err != nil {
		h.failChatbot(c, "transcribe", apperrors.Wrap(apperrors.ErrUnsupportedAudio, err), nil)
		return
	}

	transcript, err := h.assistant.Transcribe(c, s.APIKey, services.Audio{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	})
	if err != nil {
		h.failChatbot(c, "transcribe", err, nil)
		return
	}
	h.metrics.AssistantCall.WithLabelValues("transcribe", metrics.OutcomeOK).Inc()
	logger.Info(c, "Handler.HandleTranscribe - transcribed", zap.String("file", header.Filename), zap.Int("bytes", len(data)))

	if c.PostForm("ask") != "1" {
		h.renderChatbot(c, http.StatusOK, gin.H{"transcript": transcript, "question": transcript})
		return
	}

	answer, err := h.assistant.Ask(c, s.APIKey, transcript)
	if err != nil {
		h.failChatbot(c, "ask", err, gin.H{"transcript": transcript, "question": transcript})
		return
	}
	h.metrics.AssistantCall.WithLabelValues("ask", metrics.OutcomeOK).Inc()
	h.renderChatbot(c, http.StatusOK, gin.H{
		"transcript": transcript,
		"question":   transcript,
		"answer":     answer,
	})
}

// HandleAPIKey, kullanıcının girdiği API anahtarını oturuma kaydeder
func (h *Handler) HandleAPIKey(c *gin.Context) {
	s := session.From(c)
	key := strings.TrimSpace(c.PostForm("api_key"))
	if key == "" {
		s.AddFlash(session.FlashWarning, "Please enter a valid API key to use the chatbot.")
		c.Redirect(http.StatusSeeOther, "/chatbot")
		return
	}
	s.APIKey = key
	s.AddFlash(session.FlashSuccess, "API key saved for this session.")
	c.Redirect(http.StatusSeeOther, "/chatbot")
}

// chatbotRateLimited, AI uçlarında limit aşıldığında kullanıcıyı bilgilendirir
func (h *Handler) chatbotRateLimited(c *gin.Context) {
	h.metrics.AssistantCall.WithLabelValues("rate_limit", metrics.OutcomeRejected).Inc()
	if s := session.From(c); s != nil {
		s.AddFlash(session.FlashWarning, apperrors.ErrTooManyRequests.Message)
	}
	c.Redirect(http.StatusSeeOther, "/chatbot")
}
