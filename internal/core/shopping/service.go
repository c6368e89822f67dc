package shopping

import (
	"context"

	"go.uber.org/zap"

	"babounette/internal/pkg/common"
)

// ActiveListRepository persistance de la liste active
type ActiveListRepository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int) (Item, error)
	SaveItem(ctx context.Context, item Item) error
	DeleteItem(ctx context.Context, id int) error
}

// HistoryRepository persistance de l'historique d'usage des ingrédients
type HistoryRepository interface {
	Record(ctx context.Context, name, category string) error
	List(ctx context.Context) ([]HistoryEntry, error)
}

// CategoryProvider accès aux noms de catégories existantes
type CategoryProvider interface {
	ListNames(ctx context.Context) ([]string, error)
}

// ActiveListService liste de courses active : catégorisation à l'insertion,
// fusion des doublons, bascule actif/archivé. Distincte de la base de
// gestion, qui ne fusionne ni n'archive rien.
type ActiveListService struct {
	repo       ActiveListRepository
	history    HistoryRepository
	categories CategoryProvider
}

// NewActiveListService crée le service de liste active
func NewActiveListService(repo ActiveListRepository, history HistoryRepository, categories CategoryProvider) *ActiveListService {
	return &ActiveListService{
		repo:       repo,
		history:    history,
		categories: categories,
	}
}

// List renvoie la vue active (les articles cochés n'y figurent pas)
func (s *ActiveListService) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveOnly(items), nil
}

// AddItem insère un article en appliquant la réconciliation complète
func (s *ActiveListService) AddItem(ctx context.Context, item Item) (Item, error) {
	results, err := s.addAll(ctx, []Item{item})
	if err != nil {
		return Item{}, err
	}
	return results[0].Item, nil
}

// AddItems variante par lot : les articles tardifs du lot peuvent fusionner
// avec les articles antérieurs du même lot.
func (s *ActiveListService) AddItems(ctx context.Context, items []Item) ([]Item, error) {
	results, err := s.addAll(ctx, items)
	if err != nil {
		return nil, err
	}
	added := make([]Item, 0, len(results))
	for _, r := range results {
		added = append(added, r.Item)
	}
	return added, nil
}

func (s *ActiveListService) addAll(ctx context.Context, incoming []Item) ([]ReconcileResult, error) {
	existing, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListNames(ctx)
	if err != nil {
		return nil, err
	}

	_, results := ReconcileAll(existing, incoming, categories)

	for _, result := range results {
		if err := s.repo.SaveItem(ctx, result.Item); err != nil {
			return nil, err
		}

		if result.HistoryEligible {
			if err := s.history.Record(ctx, result.Item.Name, result.Item.Category); err != nil {
				// l'historique ne doit jamais faire échouer un ajout
				common.LogWarn("échec d'enregistrement de l'historique d'ingrédient",
					zap.Error(err),
					zap.String("name", result.Item.Name),
				)
			}
		}

		common.LogDebug("article réconcilié",
			zap.String("name", result.Item.Name),
			zap.Bool("merged", result.Merged),
			zap.Bool("revived", result.Revived),
		)
	}

	return results, nil
}

// Toggle bascule un article entre actif et archivé
func (s *ActiveListService) Toggle(ctx context.Context, id int) (Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	if item.State == StateActive {
		item.State = StateArchived
	} else {
		item.State = StateActive
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update remplace les champs modifiables d'un article
func (s *ActiveListService) Update(ctx context.Context, item Item) (Item, error) {
	current, err := s.repo.GetItem(ctx, item.ID)
	if err != nil {
		return Item{}, err
	}

	current.Name = item.Name
	current.Category = item.Category
	current.Quantity = item.Quantity
	if err := s.repo.SaveItem(ctx, current); err != nil {
		return Item{}, err
	}
	return current, nil
}

// Remove supprime définitivement un article (opération explicite, distincte
// de la bascule)
func (s *ActiveListService) Remove(ctx context.Context, id int) error {
	if _, err := s.repo.GetItem(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, id)
}

// CompletedCount nombre d'articles cochés de la liste
func (s *ActiveListService) CompletedCount(ctx context.Context) (int, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return 0, err
	}
	return CompletedCount(items), nil
}

// Suggestions classe l'historique d'usage pour l'autocomplétion
func (s *ActiveListService) Suggestions(ctx context.Context, prefix string, limit int) ([]HistoryEntry, error) {
	entries, err := s.history.List(ctx)
	if err != nil {
		return nil, err
	}
	return RankSuggestions(entries, prefix, limit), nil
}
