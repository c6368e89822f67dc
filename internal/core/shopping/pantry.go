package shopping

import "context"

// PantryItem article de la base de gestion. Espace d'identifiants
// indépendant de la liste active, aucune interaction entre les deux.
type PantryItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  string `json:"quantity,omitempty"`
	Completed bool   `json:"completed"`
}

// PantryRepository persistance de la base de gestion
type PantryRepository interface {
	List(ctx context.Context) ([]PantryItem, error)
	Get(ctx context.Context, id int) (PantryItem, error)
	Create(ctx context.Context, item PantryItem) (PantryItem, error)
	Update(ctx context.Context, item PantryItem) error
	Delete(ctx context.Context, id int) error
}

// PantryService base de gestion : CRUD complet, cocher un article ne le
// supprime jamais de la collection.
type PantryService struct {
	repo       PantryRepository
	categories CategoryProvider
}

// NewPantryService crée le service de la base de gestion
func NewPantryService(repo PantryRepository, categories CategoryProvider) *PantryService {
	return &PantryService{repo: repo, categories: categories}
}

// List renvoie tous les articles, cochés compris
func (s *PantryService) List(ctx context.Context) ([]PantryItem, error) {
	return s.repo.List(ctx)
}

// Get renvoie un article par identifiant
func (s *PantryService) Get(ctx context.Context, id int) (PantryItem, error) {
	return s.repo.Get(ctx, id)
}

// Create ajoute un article ; la catégorie manquante est dérivée des mots-clés
func (s *PantryService) Create(ctx context.Context, item PantryItem) (PantryItem, error) {
	if item.Category == "" {
		categories, err := s.categories.ListNames(ctx)
		if err != nil {
			return PantryItem{}, err
		}
		item.Category = CategorizeIngredient(item.Name, categories)
	}
	return s.repo.Create(ctx, item)
}

// Update remplace un article existant
func (s *PantryService) Update(ctx context.Context, item PantryItem) (PantryItem, error) {
	if _, err := s.repo.Get(ctx, item.ID); err != nil {
		return PantryItem{}, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return PantryItem{}, err
	}
	return item, nil
}

// Toggle inverse l'indicateur coché sans rien supprimer
func (s *PantryService) Toggle(ctx context.Context, id int) (PantryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return PantryItem{}, err
	}
	item.Completed = !item.Completed
	if err := s.repo.Update(ctx, item); err != nil {
		return PantryItem{}, err
	}
	return item, nil
}

// Delete supprime un article
func (s *PantryService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
