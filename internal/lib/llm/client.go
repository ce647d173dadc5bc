package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"prop_search/internal/config"
	"log/slog"
)

// Client — клиент для взаимодействия с LLM API (OpenAI-совместимый).
// Контракт fire-and-forget: один запрос — один ответ, ядро поиска
// никогда не зависит от результата.
type Client interface {
	// GenerateDescription генерирует заголовок и описание для объявления.
	GenerateDescription(ctx context.Context, req GenerateDescriptionRequest) (*GenerateDescriptionResponse, error)
	// ValidateDescription проверяет описание на соответствие данным объявления.
	ValidateDescription(ctx context.Context, req ValidateDescriptionRequest) (*ValidateDescriptionResponse, error)
	// IsEnabled проверяет, включен ли сервис.
	IsEnabled() bool
}

// GenerateDescriptionRequest — запрос на генерацию контента объявления.
type GenerateDescriptionRequest struct {
	PropertyType string   `json:"property_type"`
	Operation    string   `json:"operation"`
	Address      string   `json:"address"`
	Neighborhood string   `json:"neighborhood,omitempty"`
	City         string   `json:"city"`
	Price        *int64   `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	Rooms        *int32   `json:"rooms,omitempty"`
	Bathrooms    *int32   `json:"bathrooms,omitempty"`
	Features     []string `json:"features,omitempty"`
	// ExistingTitle и ExistingDescription для улучшения существующего контента
	ExistingTitle       string `json:"existing_title,omitempty"`
	ExistingDescription string `json:"existing_description,omitempty"`
}

// GenerateDescriptionResponse — сгенерированный контент.
type GenerateDescriptionResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Confidence  float64  `json:"confidence"`
}

// ValidateDescriptionRequest — запрос на проверку описания.
type ValidateDescriptionRequest struct {
	Description string                 `json:"description"`
	ListingData map[string]interface{} `json:"listing_data"`
}

// ValidateDescriptionResponse — результат проверки описания.
type ValidateDescriptionResponse struct {
	Valid      bool     `json:"valid"`
	Issues     []string `json:"issues,omitempty"`
	Confidence float64  `json:"confidence"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

// NewClient создаёт новый клиент для LLM API.
func NewClient(cfg config.LLMConfig, log *slog.Logger) Client {
	if !cfg.Enabled {
		return &noopClient{log: log}
	}

	return &client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		log:     log,
	}
}

// GenerateDescription генерирует контент объявления.
func (c *client) GenerateDescription(ctx context.Context, req GenerateDescriptionRequest) (*GenerateDescriptionResponse, error) {
	const op = "llm.Client.GenerateDescription"

	prompt := buildDescriptionPrompt(req)

	chatReq := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{
				Role:    "system",
				Content: "Sos un experto en marketing inmobiliario del mercado argentino. Escribí títulos y descripciones atractivos, precisos e informativos para avisos de propiedades, en español rioplatense. Respondé estrictamente en formato JSON.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	resp, err := c.sendChatRequest(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result GenerateDescriptionResponse
	if err := json.Unmarshal([]byte(resp.Content), &result); err != nil {
		// Пытаемся извлечь JSON из текста
		jsonStr := extractJSON(resp.Content)
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, fmt.Errorf("%s: failed to parse response: %w", op, err)
		}
	}

	return &result, nil
}

// ValidateDescription проверяет описание объявления.
func (c *client) ValidateDescription(ctx context.Context, req ValidateDescriptionRequest) (*ValidateDescriptionResponse, error) {
	const op = "llm.Client.ValidateDescription"

	prompt := buildValidationPrompt(req)

	chatReq := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{
				Role: "system",
				Content: `Sos un revisor de avisos inmobiliarios. Verificá que la descripción sea coherente con los datos estructurados del aviso:
sin contradicciones de precio, ambientes, superficie ni ubicación, y sin afirmaciones engañosas. Respondé estrictamente en formato JSON.`,
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.2,
		MaxTokens:   400,
	}

	resp, err := c.sendChatRequest(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result ValidateDescriptionResponse
	jsonStr := extractJSON(resp.Content)
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("%s: failed to parse response: %w", op, err)
	}

	return &result, nil
}

func (c *client) IsEnabled() bool {
	return true
}

// ChatCompletionRequest — запрос к Chat Completion API.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage — сообщение в чате.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse — ответ от Chat Completion API.
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

type simplifiedResponse struct {
	Content string
}

func (c *client) sendChatRequest(ctx context.Context, req ChatCompletionRequest) (*simplifiedResponse, error) {
	const op = "llm.Client.sendChatRequest"

	url := fmt.Sprintf("%s/chat/completions", c.baseURL)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to send request: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: unexpected status code %d: %s", op, resp.StatusCode, string(body))
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("%s: failed to decode response: %w", op, err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%s: no choices in response", op)
	}

	return &simplifiedResponse{
		Content: chatResp.Choices[0].Message.Content,
	}, nil
}

// Вспомогательные функции для построения промптов

func buildDescriptionPrompt(req GenerateDescriptionRequest) string {
	var sb strings.Builder
	sb.WriteString("Generá un título y una descripción atractivos para esta propiedad:\n\n")
	sb.WriteString(fmt.Sprintf("Tipo: %s\n", req.PropertyType))
	sb.WriteString(fmt.Sprintf("Operación: %s\n", req.Operation))
	sb.WriteString(fmt.Sprintf("Dirección: %s\n", req.Address))

	if req.Neighborhood != "" {
		sb.WriteString(fmt.Sprintf("Barrio: %s\n", req.Neighborhood))
	}
	sb.WriteString(fmt.Sprintf("Ciudad: %s\n", req.City))

	if req.Price != nil {
		currency := req.Currency
		if currency == "" {
			currency = "USD"
		}
		sb.WriteString(fmt.Sprintf("Precio: %d %s\n", *req.Price, currency))
	}
	if req.Rooms != nil {
		sb.WriteString(fmt.Sprintf("Ambientes: %d\n", *req.Rooms))
	}
	if req.Bathrooms != nil {
		sb.WriteString(fmt.Sprintf("Baños: %d\n", *req.Bathrooms))
	}
	if len(req.Features) > 0 {
		sb.WriteString(fmt.Sprintf("Características: %s\n", strings.Join(req.Features, ", ")))
	}
	if req.ExistingTitle != "" {
		sb.WriteString(fmt.Sprintf("\nTítulo actual (mejoralo): %s\n", req.ExistingTitle))
	}
	if req.ExistingDescription != "" {
		sb.WriteString(fmt.Sprintf("Descripción actual (mejorala): %s\n", req.ExistingDescription))
	}

	sb.WriteString("\nRespondé en formato JSON: {\"title\": \"...\", \"description\": \"...\", \"keywords\": [...], \"confidence\": 0.9}")
	return sb.String()
}

func buildValidationPrompt(req ValidateDescriptionRequest) string {
	var sb strings.Builder
	sb.WriteString("Verificá esta descripción contra los datos del aviso:\n\n")
	sb.WriteString(fmt.Sprintf("Descripción: %s\n", req.Description))

	if req.ListingData != nil {
		dataJSON, _ := json.Marshal(req.ListingData)
		sb.WriteString(fmt.Sprintf("Datos estructurados: %s\n", string(dataJSON)))
	}

	sb.WriteString(`
Respondé en formato JSON:
{
  "valid": true,
  "issues": ["..."],
  "confidence": 0.9
}`)
	return sb.String()
}

// extractJSON извлекает JSON из текста ответа LLM.
func extractJSON(text string) string {
	// Ищем первую { и последнюю }
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// noopClient — заглушка для случая, когда LLM отключен.
type noopClient struct {
	log *slog.Logger
}

func (c *noopClient) GenerateDescription(ctx context.Context, req GenerateDescriptionRequest) (*GenerateDescriptionResponse, error) {
	c.log.Debug("LLM service is disabled")
	return &GenerateDescriptionResponse{
		Title:       req.ExistingTitle,
		Description: req.ExistingDescription,
		Confidence:  0,
	}, nil
}

func (c *noopClient) ValidateDescription(ctx context.Context, req ValidateDescriptionRequest) (*ValidateDescriptionResponse, error) {
	c.log.Debug("LLM service is disabled")
	return &ValidateDescriptionResponse{
		Valid:      true,
		Confidence: 0,
	}, nil
}

func (c *noopClient) IsEnabled() bool {
	return false
}
