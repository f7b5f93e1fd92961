package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/forkful/forkful-backend/internal/models"
)

// candidateRecipe is the shape of one recipe as returned by the LLM.
type candidateRecipe struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Categories           []string `json:"categories"`
	Ingredients          []string `json:"ingredients"`
	Instructions         []string `json:"instructions"`
	EstimatedPrepTime    int      `json:"estimatedPrepTime"`
	EstimatedCookingTime int      `json:"estimatedCookingTime"`
	Servings             int      `json:"servings"`
}

// LLMService generates candidate recipes through a chat-completion API. The
// core treats the API as an opaque producer of unpersisted Recipe-shaped
// data; generated recipes carry no id and no creator until saved.
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewLLMService creates a new LLMService instance from the environment.
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("DEEPSEEK_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY or DEEPSEEK_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("DEEPSEEK_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// chatMessage represents a message in the chat.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest represents a request to the chat-completion API.
type chatRequest struct {
	Model            string            `json:"model"`
	Messages         []chatMessage     `json:"messages"`
	ResponseFormat   map[string]string `json:"response_format"`
	Temperature      float64           `json:"temperature"`
	TopP             float64           `json:"top_p"`
	FrequencyPenalty float64           `json:"frequency_penalty"`
	PresencePenalty  float64           `json:"presence_penalty"`
}

const recipeSystemPrompt = `You are a professional chef. Respond in JSON with this structure:
{
    "recipes": [
        {
            "title": "Recipe name",
            "description": "Brief description of the recipe",
            "categories": ["Dessert", "Vegan"],
            "ingredients": [
                "2 cups flour",
                "1 cup sugar",
                "3 eggs"
            ],
            "instructions": [
                "Step 1: Mix the dry ingredients",
                "Step 2: Add the wet ingredients",
                "Step 3: Bake at 350F for 30 minutes"
            ],
            "estimatedPrepTime": 15,
            "estimatedCookingTime": 30,
            "servings": 4
        }
    ]
}

Note: estimatedPrepTime and estimatedCookingTime are whole minutes and must
be numbers, not strings. Omit them (or use 0) when they do not apply.
Return exactly the requested number of recipes in the "recipes" array.`

// GenerateRecipes asks the API for count candidate recipes matching the
// query and returns them as unpersisted Recipe values.
func (s *LLMService) GenerateRecipes(ctx context.Context, query string, count int) ([]models.Recipe, error) {
	if count <= 0 {
		count = 1
	}

	prompt := fmt.Sprintf("Generate %d recipe(s) for: %s", count, query)

	reqBody := chatRequest{
		Model: "deepseek-chat",
		Messages: []chatMessage{
			{Role: "system", Content: recipeSystemPrompt},
			{Role: "user", Content: prompt},
		},
		ResponseFormat:   map[string]string{"type": "json_object"},
		Temperature:      0.9,
		TopP:             0.9,
		FrequencyPenalty: 0.5,
		PresencePenalty:  0.5,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	var wrapper struct {
		Recipes []candidateRecipe `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse recipes array: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(wrapper.Recipes))
	for _, c := range wrapper.Recipes {
		recipes = append(recipes, models.Recipe{
			Title:        c.Title,
			Description:  c.Description,
			Categories:   c.Categories,
			Ingredients:  c.Ingredients,
			Instructions: c.Instructions,
			PrepTime:     c.EstimatedPrepTime,
			CookTime:     c.EstimatedCookingTime,
			Servings:     c.Servings,
		})
	}

	return recipes, nil
}
