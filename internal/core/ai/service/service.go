package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"babounette/internal/core/ai/cache"
	"babounette/internal/core/ai/openrouter"
	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

// Store cache de réponses IA, mémoire ou Redis
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Generator client de génération, complet ou en flux
type Generator interface {
	Generate(ctx context.Context, messages []openrouter.Message) (string, error)
	GenerateStream(ctx context.Context, messages []openrouter.Message, fn func(chunk string) error) error
}

// Service façade IA : normalisation du prompt, cache, délégation au client
type Service struct {
	cfg    *config.Config
	client Generator
	store  Store
}

// NewService crée la façade IA. store peut être nil quand le cache est
// désactivé.
func NewService(cfg *config.Config, client Generator, store Store) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
		store:  store,
	}
}

// NormalizePrompt replie les espaces du prompt pour stabiliser la clé de
// cache. Les mots restent séparés par une espace simple, les retours à la
// ligne et tabulations sont repliés.
func NormalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(prompt), " ")
}

// ProcessRequest renvoie la réponse du modèle pour un prompt seul, en
// passant par le cache quand il est actif.
func (s *Service) ProcessRequest(ctx context.Context, prompt string) (string, error) {
	prompt = NormalizePrompt(prompt)
	if prompt == "" {
		return "", common.NewValidationError("le prompt est vide")
	}

	key := cache.Key(prompt)
	if s.store != nil {
		if value, ok := s.store.Get(ctx, key); ok {
			return value, nil
		}
	}

	content, err := s.client.Generate(ctx, []openrouter.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}

	if s.store != nil {
		if err := s.store.Set(ctx, key, content); err != nil {
			common.LogWarn("mise en cache de la réponse IA échouée", zap.Error(err))
		}
	}

	return content, nil
}

// Generate délègue une conversation complète au client, sans cache : la
// conversation porte un historique propre à la session.
func (s *Service) Generate(ctx context.Context, messages []openrouter.Message) (string, error) {
	return s.client.Generate(ctx, messages)
}

// GenerateStream délègue une conversation en flux au client
func (s *Service) GenerateStream(ctx context.Context, messages []openrouter.Message, fn func(chunk string) error) error {
	return s.client.GenerateStream(ctx, messages, fn)
}

// Close ferme le cache sous-jacent
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
