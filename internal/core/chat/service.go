package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"babounette/internal/core/ai/openrouter"
	"babounette/internal/infrastructure/config"
	"babounette/internal/pkg/common"
)

// Rôles des messages de conversation
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message message persisté d'une conversation
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore transcription des conversations, chargée par requête
type SessionStore interface {
	Ensure(ctx context.Context, sessionID string) error
	AppendMessage(ctx context.Context, sessionID string, m Message) error
	History(ctx context.Context, sessionID string, limit int) ([]Message, error)
	Clear(ctx context.Context, sessionID string) error
}

// AIClient génération LLM, complète ou en flux
type AIClient interface {
	Generate(ctx context.Context, messages []openrouter.Message) (string, error)
	GenerateStream(ctx context.Context, messages []openrouter.Message, fn func(chunk string) error) error
	ProcessRequest(ctx context.Context, prompt string) (string, error)
}

// Types d'événements du flux de réponse
const (
	EventStart  = "start"
	EventChunk  = "chunk"
	EventRecipe = "recipe"
	EventEnd    = "end"
	EventError  = "error"
)

// Event événement du flux de réponse, sérialisé en SSE côté HTTP
type Event struct {
	Type    string       `json:"type"`
	Content string       `json:"content,omitempty"`
	Recipe  *RecipeDraft `json:"recipe,omitempty"`
}

// RecipeDraft recette compacte extraite d'une réponse de l'assistant,
// proposée à l'utilisateur pour enregistrement
type RecipeDraft struct {
	Name        string   `json:"name"`
	Servings    int      `json:"servings,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps,omitempty"`
}

const systemPrompt = `Tu es Babounette, l'assistante culinaire personnelle de la maison.
Tu réponds toujours en français, avec chaleur et concision.
Tu aides à planifier les repas, proposer des recettes, composer la liste de courses et organiser le calendrier des repas.
Quand tu proposes une recette, donne le nom du plat, les ingrédients avec leurs quantités et les étapes.`

const extractPrompt = `À partir de la recette suivante, renvoie uniquement un objet JSON compact sans texte autour, de la forme
{"name": "...", "servings": 2, "ingredients": ["200g farine", "..."], "steps": ["..."]}.
Recette :
`

// Service assistant conversationnel
type Service struct {
	store SessionStore
	ai    AIClient
	cfg   config.ChatConfig
}

// NewService crée l'assistant conversationnel
func NewService(store SessionStore, ai AIClient, cfg config.ChatConfig) *Service {
	return &Service{
		store: store,
		ai:    ai,
		cfg:   cfg,
	}
}

// SessionID renvoie la session demandée ou celle par défaut
func (s *Service) SessionID(requested string) string {
	if strings.TrimSpace(requested) == "" {
		return s.cfg.DefaultSession
	}
	return requested
}

// Ensure garantit l'existence de la session
func (s *Service) Ensure(ctx context.Context, sessionID string) error {
	return s.store.Ensure(ctx, sessionID)
}

// History renvoie la transcription de la session
func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	if err := s.store.Ensure(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.store.History(ctx, sessionID, s.cfg.HistoryLimit)
}

// Clear efface la transcription de la session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Stream traite un message utilisateur et renvoie le flux d'événements de la
// réponse. Le canal est fermé après l'événement final end ou error.
// L'annulation du contexte interrompt le flux.
func (s *Service) Stream(ctx context.Context, sessionID, userMessage string) (<-chan Event, error) {
	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return nil, common.NewValidationError("le message est vide")
	}

	if err := s.store.Ensure(ctx, sessionID); err != nil {
		return nil, err
	}
	history, err := s.store.History(ctx, sessionID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	messages := buildPrompt(history, userMessage)
	events := make(chan Event, 8)

	go func() {
		defer close(events)

		// tout envoi est soumis à l'annulation du contexte : un client parti
		// sans vider le canal ne doit jamais bloquer cette goroutine
		send := func(e Event) bool {
			select {
			case events <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(Event{Type: EventStart}) {
			return
		}

		var reply strings.Builder
		err := s.ai.GenerateStream(ctx, messages, func(chunk string) error {
			reply.WriteString(chunk)
			if !send(Event{Type: EventChunk, Content: chunk}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			common.LogError("flux de conversation interrompu",
				zap.Error(err),
				zap.String("session_id", sessionID),
			)
			send(Event{Type: EventError, Content: "la réponse de l'assistante a été interrompue"})
			return
		}

		s.persistTurn(ctx, sessionID, userMessage, reply.String())

		if s.cfg.RecipeExtract && LooksLikeRecipeRequest(userMessage) {
			if draft := s.extractRecipe(ctx, reply.String()); draft != nil {
				if !send(Event{Type: EventRecipe, Recipe: draft}) {
					return
				}
			}
		}

		send(Event{Type: EventEnd})
	}()

	return events, nil
}

// persistTurn enregistre l'échange. Un échec d'écriture ne casse pas la
// réponse déjà transmise.
func (s *Service) persistTurn(ctx context.Context, sessionID, userMessage, reply string) {
	now := time.Now()
	if err := s.store.AppendMessage(ctx, sessionID, Message{
		Role: RoleUser, Content: userMessage, CreatedAt: now,
	}); err != nil {
		common.LogWarn("enregistrement du message utilisateur échoué", zap.Error(err))
		return
	}
	if err := s.store.AppendMessage(ctx, sessionID, Message{
		Role: RoleAssistant, Content: reply, CreatedAt: now,
	}); err != nil {
		common.LogWarn("enregistrement de la réponse échoué", zap.Error(err))
	}
}

// extractRecipe demande au modèle la recette de la réponse sous forme JSON
// compacte. Tout échec est avalé, la conversation n'en dépend pas.
func (s *Service) extractRecipe(ctx context.Context, reply string) *RecipeDraft {
	raw, err := s.ai.ProcessRequest(ctx, extractPrompt+reply)
	if err != nil {
		common.LogWarn("extraction de recette échouée", zap.Error(err))
		return nil
	}

	payload := common.ExtractJSONObject(raw)
	if payload == "" {
		return nil
	}

	var draft RecipeDraft
	if err := common.ParseJSON(payload, &draft); err != nil {
		common.LogWarn("recette extraite illisible", zap.Error(err))
		return nil
	}
	if draft.Name == "" || len(draft.Ingredients) == 0 {
		return nil
	}
	return &draft
}

// buildPrompt assemble le prompt : persona, historique, message courant
func buildPrompt(history []Message, userMessage string) []openrouter.Message {
	messages := make([]openrouter.Message, 0, len(history)+2)
	messages = append(messages, openrouter.Message{Role: RoleSystem, Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, openrouter.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openrouter.Message{Role: RoleUser, Content: userMessage})
	return messages
}

var recipeKeywords = []string{
	"recette", "cuisiner", "préparer", "prépare", "plat", "dessert",
	"idée repas", "menu", "dîner", "déjeuner",
}

var chatFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
)

// LooksLikeRecipeRequest vrai quand le message ressemble à une demande de
// recette, insensible à la casse et aux accents
func LooksLikeRecipeRequest(message string) bool {
	folded := chatFolder.Replace(strings.ToLower(message))
	for _, kw := range recipeKeywords {
		if strings.Contains(folded, chatFolder.Replace(kw)) {
			return true
		}
	}
	return false
}
