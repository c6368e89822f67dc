package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// PantryHandler endpoints de la base de gestion
type PantryHandler struct {
	svc *shopping.PantryService
}

// NewPantryHandler crée le handler de la base de gestion
func NewPantryHandler(svc *shopping.PantryService) *PantryHandler {
	return &PantryHandler{svc: svc}
}

// PantryItemRequest création ou mise à jour d'un article
type PantryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity,omitempty"`
	Category string `json:"category,omitempty"`
}

// List renvoie tous les articles
func (h *PantryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create ajoute un article, sans fusion : la base de gestion garde chaque
// ligne telle quelle
func (h *PantryHandler) Create(c *gin.Context) {
	var req PantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom de l'article est requis"))
		return
	}

	item, err := h.svc.Create(c.Request.Context(), shopping.PantryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update modifie un article existant
func (h *PantryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req PantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom de l'article est requis"))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), shopping.PantryItem{
		ID:       id,
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Toggle coche ou décoche un article, sans jamais le retirer
func (h *PantryHandler) Toggle(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	item, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete retire un article de la base de gestion
func (h *PantryHandler) Delete(c *gin.Context) {
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
