package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"babounette/internal/core/chat"
	"babounette/internal/pkg/common"
)

// ChatHandler endpoints de l'assistante conversationnelle
type ChatHandler struct {
	svc *chat.Service
}

// NewChatHandler crée le handler de l'assistante
func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// ChatRequest message envoyé à l'assistante
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// Stream répond en flux SSE : une ligne "data: {...}" par événement.
// La déconnexion du client interrompt la génération.
func (h *ChatHandler) Stream(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le message est requis"))
		return
	}

	sessionID := h.svc.SessionID(req.SessionID)
	events, err := h.svc.Stream(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		writeError(c, common.ErrInternalError.WithMessage("le flux SSE n'est pas supporté"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	for event := range events {
		payload, err := common.ToJSON(event)
		if err != nil {
			common.LogError("sérialisation d'un événement SSE échouée", zap.Error(err))
			continue
		}
		if _, err := c.Writer.WriteString("data: " + payload + "\n\n"); err != nil {
			// client parti, le contexte annulé arrêtera la génération
			return
		}
		flusher.Flush()
	}
}

// NewSession ouvre une session de conversation distincte de la session
// par défaut
func (h *ChatHandler) NewSession(c *gin.Context) {
	sessionID := common.GenerateUUID()
	if err := h.svc.Ensure(c.Request.Context(), sessionID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": sessionID})
}

// History renvoie la transcription de la session
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := h.svc.SessionID(c.Query("session_id"))
	messages, err := h.svc.History(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

// Clear efface la transcription de la session
func (h *ChatHandler) Clear(c *gin.Context) {
	sessionID := h.svc.SessionID(c.Query("session_id"))
	if err := h.svc.Clear(c.Request.Context(), sessionID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
