package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babounette/internal/core/ai/openrouter"
	"babounette/internal/infrastructure/config"
)

type fakeGenerator struct {
	calls    int
	response string
	chunks   []string
}

func (f *fakeGenerator) Generate(_ context.Context, _ []openrouter.Message) (string, error) {
	f.calls++
	return f.response, nil
}

func (f *fakeGenerator) GenerateStream(_ context.Context, _ []openrouter.Message, fn func(string) error) error {
	f.calls++
	for _, c := range f.chunks {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

type fakeStore struct {
	data map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.data[key] = value
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestNormalizePrompt(t *testing.T) {
	assert.Equal(t, "liste de courses", NormalizePrompt("  liste   de\n\tcourses "))
	assert.Equal(t, "", NormalizePrompt(" \n\t "))
}

func TestProcessRequestCaches(t *testing.T) {
	gen := &fakeGenerator{response: "voici la réponse"}
	store := newFakeStore()
	svc := NewService(&config.Config{}, gen, store)

	out, err := svc.ProcessRequest(context.Background(), "idée de menu")
	require.NoError(t, err)
	assert.Equal(t, "voici la réponse", out)
	assert.Equal(t, 1, gen.calls)

	// même prompt à espaces près : servi depuis le cache
	out, err = svc.ProcessRequest(context.Background(), "  idée   de menu ")
	require.NoError(t, err)
	assert.Equal(t, "voici la réponse", out)
	assert.Equal(t, 1, gen.calls)
}

func TestProcessRequestWithoutStore(t *testing.T) {
	gen := &fakeGenerator{response: "réponse"}
	svc := NewService(&config.Config{}, gen, nil)

	out, err := svc.ProcessRequest(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "réponse", out)

	_, err = svc.ProcessRequest(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestProcessRequestEmptyPrompt(t *testing.T) {
	svc := NewService(&config.Config{}, &fakeGenerator{}, nil)

	_, err := svc.ProcessRequest(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGenerateStreamPassthrough(t *testing.T) {
	gen := &fakeGenerator{chunks: []string{"Bon", "jour"}}
	svc := NewService(&config.Config{}, gen, nil)

	var got string
	err := svc.GenerateStream(context.Background(), nil, func(chunk string) error {
		got += chunk
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", got)
}
