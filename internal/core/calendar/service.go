package calendar

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"babounette/internal/pkg/common"
)

// Formats attendus pour la date et l'heure d'un événement
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event événement du calendrier des repas
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
	RecipeID    *int   `json:"recipe_id,omitempty"`
}

// Repository persistance des événements
type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id int) (Event, error)
	ListByRange(ctx context.Context, from, to string) ([]Event, error)
	Update(ctx context.Context, e Event) (Event, error)
	Delete(ctx context.Context, id int) error
}

// Service gestionnaire du calendrier
type Service struct {
	repo Repository
}

// NewService crée le gestionnaire du calendrier
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return common.NewValidationError("le titre de l'événement est requis")
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return common.NewValidationError("la date doit être au format AAAA-MM-JJ")
	}
	if e.Time != "" {
		if _, err := time.Parse(TimeLayout, e.Time); err != nil {
			return common.NewValidationError("l'heure doit être au format HH:MM")
		}
	}
	return nil
}

// Create valide puis enregistre un événement
func (s *Service) Create(ctx context.Context, e Event) (Event, error) {
	if err := validate(e); err != nil {
		return Event{}, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return Event{}, err
	}

	common.LogInfo("événement de calendrier créé",
		zap.Int("id", created.ID),
		zap.String("date", created.Date),
	)
	return created, nil
}

// Get renvoie un événement par identifiant
func (s *Service) Get(ctx context.Context, id int) (Event, error) {
	return s.repo.GetByID(ctx, id)
}

// ListMonth renvoie les événements d'un mois donné ("2026-08")
func (s *Service) ListMonth(ctx context.Context, month string) ([]Event, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, common.NewValidationError("le mois doit être au format AAAA-MM")
	}
	end := start.AddDate(0, 1, -1)
	return s.repo.ListByRange(ctx, start.Format(DateLayout), end.Format(DateLayout))
}

// ListRange renvoie les événements entre deux dates incluses
func (s *Service) ListRange(ctx context.Context, from, to string) ([]Event, error) {
	if _, err := time.Parse(DateLayout, from); err != nil {
		return nil, common.NewValidationError("la date de début doit être au format AAAA-MM-JJ")
	}
	if _, err := time.Parse(DateLayout, to); err != nil {
		return nil, common.NewValidationError("la date de fin doit être au format AAAA-MM-JJ")
	}
	return s.repo.ListByRange(ctx, from, to)
}

// Update valide puis met à jour un événement existant
func (s *Service) Update(ctx context.Context, e Event) (Event, error) {
	if err := validate(e); err != nil {
		return Event{}, err
	}
	if _, err := s.repo.GetByID(ctx, e.ID); err != nil {
		return Event{}, err
	}
	return s.repo.Update(ctx, e)
}

// Delete supprime un événement
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
