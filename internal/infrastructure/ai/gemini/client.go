// Package gemini provides the Google Generative Language API
// implementation of the AI service: pantry image recognition, recipe
// generation and streaming chef chat. Without an API key the client
// degrades to deterministic offline responses so the rest of the
// application keeps working.
package gemini

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nourishly/v1/internal/domain/pantry"
	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/infrastructure/config"
	"github.com/nourishly/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Client implements the AIService interface against the Gemini REST API
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	client    *http.Client
	logger    *zap.Logger
	maxTokens int
}

// NewClient creates a new Gemini client
func NewClient(cfg *config.Config, logger *zap.Logger) outbound.AIService {
	timeout := cfg.AI.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	logger.Info("Gemini client initialized",
		zap.String("base_url", cfg.AI.BaseURL),
		zap.String("model", cfg.AI.Model),
		zap.Bool("offline_fallback", cfg.AI.APIKey == ""),
	)

	return &Client{
		baseURL:   strings.TrimRight(cfg.AI.BaseURL, "/"),
		apiKey:    cfg.AI.APIKey,
		model:     cfg.AI.Model,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.Named("gemini-client"),
		maxTokens: cfg.AI.MaxOutputTokens,
	}
}

// Gemini API structures

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	MaxOutputTokens  int             `json:"maxOutputTokens,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// text returns the concatenated text parts of the first candidate.
func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		builder.WriteString(p.Text)
	}
	return builder.String()
}

// Structured output schemas, mirroring the response shapes the
// application parses.

var recipeSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"title": {"type": "STRING"},
		"description": {"type": "STRING"},
		"ingredients": {"type": "ARRAY", "items": {"type": "STRING"}},
		"instructions": {"type": "ARRAY", "items": {"type": "STRING"}},
		"calories": {"type": "NUMBER"},
		"prep_time_minutes": {"type": "NUMBER"},
		"cuisine": {"type": "STRING"},
		"meal_type": {"type": "STRING"},
		"difficulty": {"type": "STRING", "enum": ["Easy", "Medium", "Hard"]},
		"servings": {"type": "NUMBER"},
		"tips": {"type": "ARRAY", "items": {"type": "STRING"}}
	},
	"required": ["title", "description", "ingredients", "instructions", "calories", "prep_time_minutes", "difficulty", "servings"]
}`)

var pantryItemSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"name": {"type": "STRING"},
		"quantity": {"type": "NUMBER"},
		"unit": {"type": "STRING"},
		"expiry_date": {"type": "STRING", "description": "YYYY-MM-DD or null if not found"},
		"category": {"type": "STRING", "enum": ["produce", "dairy", "protein", "pantry", "other"]}
	},
	"required": ["name", "quantity", "unit", "category"]
}`)

// IdentifyPantryItem sends an image to the model and parses the
// structured item guess. A response the model could not ground returns
// (nil, nil); the caller treats that as a recoverable miss.
func (c *Client) IdentifyPantryItem(ctx context.Context, image []byte, lang profile.Language) (*pantry.ItemAnalysis, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	prompt := `Identify the food product in this image.
If you see a barcode or text on packaging, use it to identify the item name accurately.
Estimate quantity (e.g. 1 for a pack/bottle, or grams if visible).
Suggest a unit (pcs, g, kg, ml, l, cup, pack).
If an expiration date is clearly visible on the packaging, extract it (YYYY-MM-DD). If not, leave expiry_date null.
Categorize into: produce, dairy, protein, pantry, other.
` + languageInstruction(lang, "Return the name")

	request := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: prompt},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   pantryItemSchema,
			MaxOutputTokens:  c.maxTokens,
		},
	}

	var response generateResponse
	if err := c.generate(ctx, &request, &response); err != nil {
		return nil, fmt.Errorf("identify pantry item: %w", err)
	}

	text := response.text()
	if text == "" {
		return nil, nil
	}

	var analysis pantry.ItemAnalysis
	if err := json.Unmarshal([]byte(extractJSON(text)), &analysis); err != nil {
		c.logger.Warn("Unparseable item analysis", zap.String("text", text), zap.Error(err))
		return nil, nil
	}
	if analysis.Name == "" {
		return nil, nil
	}
	return &analysis, nil
}

// GenerateRecipe asks the model for a recipe built from the given
// ingredients, honoring the cuisine, meal-type and mood constraints.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string, constraints outbound.RecipeConstraints) (*outbound.RecipeResponse, error) {
	if c.apiKey == "" {
		return c.fallbackRecipe(ingredients), nil
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, `Create a healthy, delicious recipe using these ingredients: %s.
You can assume basic pantry staples (oil, salt, pepper) are available.
Focus on a meal suitable for a woman's nutritional needs.`, strings.Join(ingredients, ", "))

	if constraints.MealType != "" && constraints.MealType != "Any" {
		fmt.Fprintf(&prompt, " The meal must be a %s.", constraints.MealType)
	}
	if constraints.Cuisine != "" && constraints.Cuisine != "Any" {
		fmt.Fprintf(&prompt, " The recipe must be in the style of %s cuisine.", constraints.Cuisine)
	}
	if constraints.Mood != "" && constraints.Mood != "Any" {
		fmt.Fprintf(&prompt, " The recipe should fit a %q mood/occasion.", constraints.Mood)
	}
	prompt.WriteString(" " + languageInstruction(constraints.Language, "Respond"))

	system := `You are a world-class nutritionist and chef designed to help women cook healthy meals easily.
Provide 2-3 helpful tips (substitutions, nutritional benefits) in the 'tips' field.
If the cuisine is Central Asian (Uzbek, Tajik, etc.), suggest an adapted healthier version if traditional versions are too heavy, but keep the authentic flavor profile.`

	request := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: prompt.String()}},
		}},
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   recipeSchema,
			MaxOutputTokens:  c.maxTokens,
		},
	}

	var response generateResponse
	if err := c.generate(ctx, &request, &response); err != nil {
		return nil, fmt.Errorf("generate recipe: %w", err)
	}

	text := response.text()
	if text == "" {
		return nil, fmt.Errorf("generate recipe: empty model response")
	}

	var recipe outbound.RecipeResponse
	if err := json.Unmarshal([]byte(extractJSON(text)), &recipe); err != nil {
		return nil, fmt.Errorf("generate recipe: parse response: %w", err)
	}
	return &recipe, nil
}

// StreamChat opens a streaming chat completion and forwards text deltas
// in arrival order. The returned channel closes after the terminal
// event; cancelling the context stops the stream.
func (c *Client) StreamChat(ctx context.Context, history []outbound.ChatTurn, message string, lang profile.Language) (<-chan outbound.ChatDelta, error) {
	deltas := make(chan outbound.ChatDelta, 8)

	if c.apiKey == "" {
		go func() {
			defer close(deltas)
			select {
			case deltas <- outbound.ChatDelta{Text: "I'm sorry, I cannot connect to the AI service right now (missing API key)."}:
			case <-ctx.Done():
			}
		}()
		return deltas, nil
	}

	system := "You are a friendly, supportive AI Chef and Nutritionist for a women's health app. " +
		"Keep answers concise, encouraging, and helpful. You help with ingredient substitutions, " +
		"cooking tips, and quick healthy snack ideas. " + languageInstruction(lang, "Respond")

	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{
			Role:  turn.Role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	contents = append(contents, content{
		Role:  "user",
		Parts: []part{{Text: message}},
	})

	request := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		GenerationConfig:  &generationConfig{MaxOutputTokens: c.maxTokens},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("stream chat: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse&key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("stream chat: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stream chat: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("stream chat: unexpected status %d", resp.StatusCode)
	}

	go c.consumeStream(ctx, resp.Body, deltas)
	return deltas, nil
}

// consumeStream reads server-sent events off the response body and
// forwards each candidate's text as one delta.
func (c *Client) consumeStream(ctx context.Context, body io.ReadCloser, deltas chan<- outbound.ChatDelta) {
	defer close(deltas)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			c.logger.Debug("Skipping malformed stream chunk", zap.Error(err))
			continue
		}

		text := chunk.text()
		if text == "" {
			continue
		}

		select {
		case deltas <- outbound.ChatDelta{Text: text}:
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		select {
		case deltas <- outbound.ChatDelta{Err: fmt.Errorf("stream chat: %w", err)}:
		case <-ctx.Done():
		}
	}
}

// generate performs a non-streaming generateContent call.
func (c *Client) generate(ctx context.Context, request *generateRequest, response *generateResponse) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	return json.NewDecoder(resp.Body).Decode(response)
}

// fallbackRecipe is the deterministic offline recipe used when no API
// key is configured, so the cook flow stays demonstrable.
func (c *Client) fallbackRecipe(ingredients []string) *outbound.RecipeResponse {
	c.logger.Warn("No API key configured, serving fallback recipe")

	highlighted := "your pantry items"
	if len(ingredients) > 0 {
		highlighted = ingredients[0]
	}

	return &outbound.RecipeResponse{
		Title:       "Avocado & Egg Toast",
		Description: fmt.Sprintf("A quick offline recipe built around %s.", highlighted),
		Ingredients: []string{"Avocado", "Bread", "Egg"},
		Instructions: []string{
			"Toast bread",
			"Mash avocado",
			"Fry egg",
			"Combine",
		},
		Calories:        350,
		PrepTimeMinutes: 10,
		Cuisine:         "European",
		MealType:        "Breakfast",
		Difficulty:      "Easy",
		Servings:        1,
		Tips: []string{
			"Add some chili flakes for heat!",
			"Use sourdough for better texture.",
		},
	}
}

// extractJSON strips markdown code fences some models wrap around
// structured output.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}

func languageInstruction(lang profile.Language, verb string) string {
	if lang == profile.LanguageRussian {
		return verb + " in Russian."
	}
	return verb + " in English."
}
