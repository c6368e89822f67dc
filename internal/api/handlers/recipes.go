package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"babounette/internal/core/recipe"
	"babounette/internal/pkg/common"
)

// RecipeHandler endpoints des recettes
type RecipeHandler struct {
	svc *recipe.Service
}

// NewRecipeHandler crée le handler des recettes
func NewRecipeHandler(svc *recipe.Service) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// RecipeRequest création d'une recette
type RecipeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	Servings    int    `json:"servings,omitempty"`
	PrepMinutes int    `json:"prep_minutes,omitempty"`
	Ingredients []struct {
		Name     string `json:"name" binding:"required"`
		Quantity string `json:"quantity,omitempty"`
	} `json:"ingredients" binding:"required,min=1,dive"`
	Steps     []string `json:"steps,omitempty"`
	ImageData string   `json:"image_data,omitempty"`
}

// List renvoie toutes les recettes
func (h *RecipeHandler) List(c *gin.Context) {
	recipes, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Create enregistre une recette. Un nom trop proche d'une recette existante
// répond 409, une image au-delà du budget est écartée avec avertissement.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("le nom et au moins un ingrédient sont requis"))
		return
	}

	r := recipe.Recipe{
		Name:        req.Name,
		Description: req.Description,
		Servings:    req.Servings,
		PrepMinutes: req.PrepMinutes,
		Steps:       req.Steps,
		ImageData:   req.ImageData,
	}
	for _, ing := range req.Ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
		})
	}

	result, err := h.svc.Save(c.Request.Context(), r)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Get renvoie une recette par identifiant
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete supprime une recette
func (h *RecipeHandler) Delete(c *gin.Context) {
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

// ToShoppingList verse les ingrédients de la recette dans la liste active
func (h *RecipeHandler) ToShoppingList(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	items, err := h.svc.ImportToShoppingList(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
