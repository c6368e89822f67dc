package common

import (
	"errors"
	"net/http"
)

// ErrorResponse structure des réponses d'erreur de l'API
type ErrorResponse struct {
	Code    string `json:"code"`              // code d'erreur
	Message string `json:"message"`           // message destiné à l'utilisateur
	Details string `json:"details,omitempty"` // détails (mode debug uniquement)
}

// CustomError erreur typée portée jusqu'à la frontière HTTP
type CustomError struct {
	Code    string // code d'erreur
	Message string // message destiné à l'utilisateur
	Err     error  // erreur d'origine
	Status  int    // statut HTTP
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError crée une erreur typée
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WithMessage copie l'erreur avec un message plus précis.
func (e *CustomError) WithMessage(message string) *CustomError {
	return &CustomError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Err:     e.Err,
	}
}

// AsCustomError extrait une CustomError d'une chaîne d'erreurs.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// ValidationError erreur de validation d'entrée
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError crée une erreur de validation
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError teste si l'erreur est une erreur de validation
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Codes d'erreur prédéfinis
const (
	// Erreurs client (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// Erreurs serveur (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// Erreurs prédéfinies
var (
	// Erreurs client
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "requête invalide", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "ressource introuvable", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "conflit de ressources", http.StatusConflict, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "trop de requêtes", http.StatusTooManyRequests, nil)

	// Erreurs serveur
	ErrInternalError      = NewError(ErrCodeInternalError, "erreur interne du serveur", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "service temporairement indisponible", http.StatusServiceUnavailable, nil)

	// Erreurs métier
	ErrRecipeConflict    = NewError("RECIPE_CONFLICT", "une recette au nom similaire existe déjà", http.StatusConflict, nil)
	ErrDefaultCategory   = NewError("DEFAULT_CATEGORY", "la catégorie par défaut ne peut pas être supprimée", http.StatusBadRequest, nil)
	ErrPayloadTooLarge   = NewError("PAYLOAD_TOO_LARGE", "la pièce jointe dépasse la taille autorisée", http.StatusBadRequest, nil)
	ErrCacheFull         = NewError("CACHE_FULL", "cache saturé", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled     = NewError("CACHE_DISABLED", "cache désactivé", http.StatusServiceUnavailable, nil)
	ErrAIServiceError    = NewError("AI_SERVICE_ERROR", "erreur du service IA", http.StatusServiceUnavailable, nil)
	ErrSessionNotFound   = NewError("SESSION_NOT_FOUND", "session de conversation introuvable", http.StatusNotFound, nil)
	ErrItemNotFound      = NewError("ITEM_NOT_FOUND", "article introuvable", http.StatusNotFound, nil)
	ErrRecipeNotFound    = NewError("RECIPE_NOT_FOUND", "recette introuvable", http.StatusNotFound, nil)
	ErrEventNotFound     = NewError("EVENT_NOT_FOUND", "événement introuvable", http.StatusNotFound, nil)
	ErrCategoryNotFound  = NewError("CATEGORY_NOT_FOUND", "catégorie introuvable", http.StatusNotFound, nil)
	ErrCategoryConflict  = NewError("CATEGORY_CONFLICT", "cette catégorie existe déjà", http.StatusConflict, nil)
)
