package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babounette/internal/infrastructure/database"
	"babounette/internal/pkg/common"
)

// CategoryHandler endpoints des catégories de courses
type CategoryHandler struct {
	repo *database.CategoryRepo
}

// NewCategoryHandler crée le handler des catégories
func NewCategoryHandler(repo *database.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// CategoryRequest création d'une catégorie
type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// List renvoie toutes les catégories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.repo.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Create ajoute une catégorie
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom de la catégorie est requis"))
		return
	}

	category, err := h.repo.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete supprime une catégorie, les articles repartent dans "Divers"
func (h *CategoryHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.repo.Delete(c.Request.Context(), name); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
