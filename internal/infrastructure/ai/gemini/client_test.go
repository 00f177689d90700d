package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/infrastructure/config"
	"github.com/nourishly/v1/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL, apiKey string) *Client {
	cfg := &config.Config{}
	cfg.AI.BaseURL = baseURL
	cfg.AI.APIKey = apiKey
	cfg.AI.Model = "gemini-pro"
	cfg.AI.Timeout = 5 * time.Second
	return NewClient(cfg, zap.NewNop()).(*Client)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"BareJSON", `{"a":1}`, `{"a":1}`},
		{"FencedJSON", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"FencedWithoutLanguage", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"SurroundingWhitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.in))
		})
	}
}

func TestOfflineFallbacks(t *testing.T) {
	client := newTestClient("https://unreachable.invalid", "")

	t.Run("IdentifyPantryItem_ShouldReturnRecoverableMiss", func(t *testing.T) {
		analysis, err := client.IdentifyPantryItem(context.Background(), []byte("jpeg"), profile.LanguageEnglish)

		require.NoError(t, err)
		assert.Nil(t, analysis)
	})

	t.Run("GenerateRecipe_ShouldServeDeterministicRecipe", func(t *testing.T) {
		recipe, err := client.GenerateRecipe(context.Background(), []string{"Spinach"}, outbound.RecipeConstraints{})

		require.NoError(t, err)
		assert.Equal(t, "Avocado & Egg Toast", recipe.Title)
		assert.Contains(t, recipe.Description, "Spinach")
	})

	t.Run("StreamChat_ShouldDeliverSingleNoticeAndClose", func(t *testing.T) {
		deltas, err := client.StreamChat(context.Background(), nil, "hi", profile.LanguageEnglish)
		require.NoError(t, err)

		var collected []outbound.ChatDelta
		for delta := range deltas {
			collected = append(collected, delta)
		}
		require.Len(t, collected, 1)
		assert.NoError(t, collected[0].Err)
		assert.NotEmpty(t, collected[0].Text)
	})
}

func TestGenerateRecipeAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "generateContent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"parts": [{"text": "{\"title\":\"Spinach Omelette\",\"description\":\"Fast and green.\",\"ingredients\":[\"Spinach\",\"Eggs\"],\"instructions\":[\"Whisk\",\"Fry\"],\"calories\":320,\"prep_time_minutes\":10,\"difficulty\":\"Easy\",\"servings\":1}"}]}}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	recipe, err := client.GenerateRecipe(context.Background(), []string{"Spinach", "Eggs"}, outbound.RecipeConstraints{
		MealType: "Breakfast",
	})

	require.NoError(t, err)
	assert.Equal(t, "Spinach Omelette", recipe.Title)
	assert.Equal(t, 320, recipe.Calories)
	assert.Equal(t, "Easy", recipe.Difficulty)
}

func TestStreamChatAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "alt=sse")
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(`data: {"candidates":[{"content":{"parts":[{"text":"Hello "}]}}]}` + "\n\n"))
		w.Write([]byte(`data: {"candidates":[{"content":{"parts":[{"text":"chef!"}]}}]}` + "\n\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	deltas, err := client.StreamChat(context.Background(), []outbound.ChatTurn{
		{Role: "user", Text: "hi"},
	}, "What's for dinner?", profile.LanguageEnglish)
	require.NoError(t, err)

	var text string
	for delta := range deltas {
		require.NoError(t, delta.Err)
		text += delta.Text
	}
	assert.Equal(t, "Hello chef!", text)
}

func TestGenerateRecipeErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateRecipe(context.Background(), []string{"Spinach"}, outbound.RecipeConstraints{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
