package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"babounette/internal/core/calendar"
	"babounette/internal/pkg/common"
)

// CalendarHandler endpoints du calendrier des repas
type CalendarHandler struct {
	svc *calendar.Service
}

// NewCalendarHandler crée le handler du calendrier
func NewCalendarHandler(svc *calendar.Service) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// EventRequest création ou mise à jour d'un événement
type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	RecipeID    *int   `json:"recipe_id,omitempty"`
}

// List renvoie les événements du mois demandé (?month=2026-08), du mois
// courant par défaut
func (h *CalendarHandler) List(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	events, err := h.svc.ListMonth(c.Request.Context(), month)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Create ajoute un événement
func (h *CalendarHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le titre et la date sont requis"))
		return
	}

	event, err := h.svc.Create(c.Request.Context(), calendar.Event{
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		RecipeID:    req.RecipeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// Get renvoie un événement par identifiant
func (h *CalendarHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	event, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Update modifie un événement existant
func (h *CalendarHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le titre et la date sont requis"))
		return
	}

	event, err := h.svc.Update(c.Request.Context(), calendar.Event{
		ID:          id,
		Title:       req.Title,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		RecipeID:    req.RecipeID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete supprime un événement
func (h *CalendarHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
