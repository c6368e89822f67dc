package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"babounette/internal/core/shopping"
	"babounette/internal/pkg/common"
)

// ShoppingHandler endpoints de la liste de courses active
type ShoppingHandler struct {
	svc *shopping.ActiveListService
}

// NewShoppingHandler crée le handler de la liste active
func NewShoppingHandler(svc *shopping.ActiveListService) *ShoppingHandler {
	return &ShoppingHandler{svc: svc}
}

// AddItemRequest ajout d'un article à la liste
type AddItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity,omitempty"`
	Category string `json:"category,omitempty"`
	Source   string `json:"source,omitempty"`
}

// ImportRequest ajout groupé, typiquement depuis une recette
type ImportRequest struct {
	Items []AddItemRequest `json:"items" binding:"required,min=1,dive"`
}

// List renvoie les articles actifs
func (h *ShoppingHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Add insère un article, avec fusion des doublons
func (h *ShoppingHandler) Add(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom de l'article est requis"))
		return
	}

	item, err := h.svc.AddItem(c.Request.Context(), shopping.Item{
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
		Source:   req.Source,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Import insère un lot d'articles en une passe
func (h *ShoppingHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("au moins un article est requis"))
		return
	}

	items := make([]shopping.Item, 0, len(req.Items))
	for _, r := range req.Items {
		items = append(items, shopping.Item{
			Name:     r.Name,
			Quantity: r.Quantity,
			Category: r.Category,
			Source:   r.Source,
		})
	}

	added, err := h.svc.AddItems(c.Request.Context(), items)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": added})
}

// Toggle bascule un article entre actif et archivé
func (h *ShoppingHandler) Toggle(c *gin.Context) {
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

// Update modifie un article existant
func (h *ShoppingHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom de l'article est requis"))
		return
	}

	item, err := h.svc.Update(c.Request.Context(), shopping.Item{
		ID:       id,
		Name:     req.Name,
		Quantity: req.Quantity,
		Category: req.Category,
		Source:   req.Source,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Remove retire définitivement un article
func (h *ShoppingHandler) Remove(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Completed renvoie le nombre d'articles cochés
func (h *ShoppingHandler) Completed(c *gin.Context) {
	count, err := h.svc.CompletedCount(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": count})
}

// Suggestions complète la saisie depuis l'historique d'usage
func (h *ShoppingHandler) Suggestions(c *gin.Context) {
	prefix := c.Query("q")
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.svc.Suggestions(c.Request.Context(), prefix, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": entries})
}

func pathID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, common.NewValidationError("identifiant invalide")
	}
	return id, nil
}
