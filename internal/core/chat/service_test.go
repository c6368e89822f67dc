package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"babounette/internal/core/ai/openrouter"
	"babounette/internal/infrastructure/config"
)

type fakeStore struct {
	sessions map[string][]Message
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string][]Message)}
}

func (f *fakeStore) Ensure(_ context.Context, sessionID string) error {
	if _, ok := f.sessions[sessionID]; !ok {
		f.sessions[sessionID] = nil
	}
	return nil
}

func (f *fakeStore) AppendMessage(_ context.Context, sessionID string, m Message) error {
	f.sessions[sessionID] = append(f.sessions[sessionID], m)
	return nil
}

func (f *fakeStore) History(_ context.Context, sessionID string, limit int) ([]Message, error) {
	msgs := f.sessions[sessionID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (f *fakeStore) Clear(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

type fakeAI struct {
	chunks      []string
	streamErr   error
	extractJSON string
	extractErr  error
	prompts     [][]openrouter.Message
}

func (f *fakeAI) Generate(_ context.Context, messages []openrouter.Message) (string, error) {
	f.prompts = append(f.prompts, messages)
	var out string
	for _, c := range f.chunks {
		out += c
	}
	return out, nil
}

func (f *fakeAI) GenerateStream(_ context.Context, messages []openrouter.Message, fn func(string) error) error {
	f.prompts = append(f.prompts, messages)
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, c := range f.chunks {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAI) ProcessRequest(_ context.Context, _ string) (string, error) {
	if f.extractErr != nil {
		return "", f.extractErr
	}
	return f.extractJSON, nil
}

func testConfig() config.ChatConfig {
	return config.ChatConfig{
		DefaultSession: "babounette-principale",
		HistoryLimit:   20,
		RecipeExtract:  true,
	}
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	for e := range events {
		out = append(out, e)
	}
	return out
}

func TestSessionIDDefault(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeAI{}, testConfig())

	assert.Equal(t, "babounette-principale", svc.SessionID(""))
	assert.Equal(t, "babounette-principale", svc.SessionID("  "))
	assert.Equal(t, "invités", svc.SessionID("invités"))
}

func TestStreamEventOrder(t *testing.T) {
	ai := &fakeAI{chunks: []string{"Bonjour", " !"}}
	svc := NewService(newFakeStore(), ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Bonjour Babounette")
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 4)
	assert.Equal(t, EventStart, got[0].Type)
	assert.Equal(t, EventChunk, got[1].Type)
	assert.Equal(t, "Bonjour", got[1].Content)
	assert.Equal(t, EventChunk, got[2].Type)
	assert.Equal(t, EventEnd, got[3].Type)
}

func TestStreamPersistsTurn(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{chunks: []string{"Avec plaisir"}}
	svc := NewService(store, ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Merci")
	require.NoError(t, err)
	collect(t, events)

	msgs := store.sessions["s1"]
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "Merci", msgs[0].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "Avec plaisir", msgs[1].Content)
}

func TestStreamIncludesHistoryInPrompt(t *testing.T) {
	store := newFakeStore()
	store.sessions["s1"] = []Message{
		{Role: RoleUser, Content: "Que manger ce soir ?"},
		{Role: RoleAssistant, Content: "Des pâtes !"},
	}
	ai := &fakeAI{chunks: []string{"ok"}}
	svc := NewService(store, ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Et demain ?")
	require.NoError(t, err)
	collect(t, events)

	require.Len(t, ai.prompts, 1)
	prompt := ai.prompts[0]
	require.Len(t, prompt, 4)
	assert.Equal(t, RoleSystem, prompt[0].Role)
	assert.Equal(t, "Que manger ce soir ?", prompt[1].Content)
	assert.Equal(t, "Et demain ?", prompt[3].Content)
}

func TestStreamEmptyMessage(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeAI{}, testConfig())

	_, err := svc.Stream(context.Background(), "s1", "   ")
	assert.Error(t, err)
}

func TestStreamErrorEvent(t *testing.T) {
	store := newFakeStore()
	ai := &fakeAI{streamErr: errors.New("panne réseau")}
	svc := NewService(store, ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Bonjour")
	require.NoError(t, err)

	got := collect(t, events)
	require.Len(t, got, 2)
	assert.Equal(t, EventStart, got[0].Type)
	assert.Equal(t, EventError, got[1].Type)

	// rien n'est persisté quand la réponse a échoué
	assert.Empty(t, store.sessions["s1"])
}

func TestStreamRecipeExtraction(t *testing.T) {
	ai := &fakeAI{
		chunks:      []string{"Voici une recette de crêpes..."},
		extractJSON: `{"name":"Crêpes","servings":4,"ingredients":["250g farine","3 oeufs","50cl lait"],"steps":["Mélanger","Cuire"]}`,
	}
	svc := NewService(newFakeStore(), ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Donne-moi une recette de crêpes")
	require.NoError(t, err)

	got := collect(t, events)
	var recipeEvent *Event
	for i := range got {
		if got[i].Type == EventRecipe {
			recipeEvent = &got[i]
		}
	}
	require.NotNil(t, recipeEvent)
	assert.Equal(t, "Crêpes", recipeEvent.Recipe.Name)
	assert.Len(t, recipeEvent.Recipe.Ingredients, 3)
}

func TestStreamExtractionFailureSwallowed(t *testing.T) {
	ai := &fakeAI{
		chunks:     []string{"Voici une recette..."},
		extractErr: errors.New("service indisponible"),
	}
	svc := NewService(newFakeStore(), ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Une recette de gratin ?")
	require.NoError(t, err)

	got := collect(t, events)
	assert.Equal(t, EventEnd, got[len(got)-1].Type)
	for _, e := range got {
		assert.NotEqual(t, EventRecipe, e.Type)
		assert.NotEqual(t, EventError, e.Type)
	}
}

func TestStreamNoExtractionForPlainChat(t *testing.T) {
	ai := &fakeAI{
		chunks:      []string{"Bonjour !"},
		extractJSON: `{"name":"X","ingredients":["y"]}`,
	}
	svc := NewService(newFakeStore(), ai, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Bonjour, comment vas-tu ?")
	require.NoError(t, err)

	for _, e := range collect(t, events) {
		assert.NotEqual(t, EventRecipe, e.Type)
	}
}

func TestStreamAbandonedClientReleasesGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	// bien plus de morceaux que la capacité du canal d'événements
	chunks := make([]string, 32)
	for i := range chunks {
		chunks[i] = "encore du texte"
	}
	svc := NewService(newFakeStore(), &fakeAI{chunks: chunks}, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	events, err := svc.Stream(ctx, "s1", "Bonjour Babounette")
	require.NoError(t, err)

	// le client lit un événement puis part sans vider le canal
	<-events
	cancel()
}

func TestLooksLikeRecipeRequest(t *testing.T) {
	assert.True(t, LooksLikeRecipeRequest("Donne-moi une recette de tarte"))
	assert.True(t, LooksLikeRecipeRequest("Une RECETTE vite !"))
	assert.True(t, LooksLikeRecipeRequest("Quoi preparer pour le diner ?"))
	assert.False(t, LooksLikeRecipeRequest("Quelle heure est-il ?"))
}

func TestHistoryAndClear(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &fakeAI{chunks: []string{"ok"}}, testConfig())

	events, err := svc.Stream(context.Background(), "s1", "Bonjour")
	require.NoError(t, err)
	collect(t, events)

	msgs, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	require.NoError(t, svc.Clear(context.Background(), "s1"))
	msgs, err = svc.History(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
