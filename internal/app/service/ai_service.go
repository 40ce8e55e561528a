package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/internal/app/model"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/karimelh/vitrine-backend/pkg/logger"
)

var (
	ErrAINotConfigured  = errors.New("OpenAI API key is not configured")
	ErrAIUpstream       = errors.New("AI provider request failed")
	ErrAIMalformedReply = errors.New("AI reply is not valid JSON")
	ErrAIQueryMissing   = errors.New("query is required")
)

// SearchResult carries the matched products plus the model's one-line
// message shown to the shopper.
type SearchResult struct {
	Products []model.Product `json:"products"`
	Message  string          `json:"message"`
}

// FormFillRequest is what the admin product form sends: the field names to
// fill, a free-text description, optional priorities and the hashtag names
// the model may pick from.
type FormFillRequest struct {
	Fields     []string
	Prompt     string
	Priorities []string
	Hashtags   []string
}

type PropertySuggestion struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormFillResult is the drafted form content. Fields the model could not
// infer stay absent from DefaultValues.
type FormFillResult struct {
	DefaultValues map[string]interface{} `json:"defaultValues"`
	Properties    []PropertySuggestion   `json:"properties"`
	Hashtags      []string               `json:"hashtags"`
	Message       string                 `json:"message"`
}

type AIService interface {
	SearchProducts(voiceCommand string) (*SearchResult, error)
	GenerateProductForm(req FormFillRequest) (*FormFillResult, error)
}

type aiService struct {
	config      *config.Config
	productRepo repository.ProductRepository
	client      *http.Client
}

func NewAIService(cfg *config.Config, productRepo repository.ProductRepository) AIService {
	return &aiService{
		config:      cfg,
		productRepo: productRepo,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// aiSearchReply is the shape the search prompt demands back.
type aiSearchReply struct {
	IDs     []uint `json:"ids"`
	Message string `json:"message"`
}

// SearchProducts sends a snapshot of the published catalogue to the model
// and asks it to pick the products matching a spoken or typed query. The
// reply must be strict JSON; anything else is a hard failure rather than
// silently returning nothing.
func (s *aiService) SearchProducts(voiceCommand string) (*SearchResult, error) {
	voiceCommand = strings.TrimSpace(voiceCommand)
	if voiceCommand == "" {
		return nil, ErrAIQueryMissing
	}
	if s.config.OpenAI.APIKey == "" {
		return nil, ErrAINotConfigured
	}

	candidates, err := s.productRepo.FindAll(repository.ProductFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &SearchResult{Products: []model.Product{}, Message: "No products available yet."}, nil
	}

	var catalogue strings.Builder
	for _, p := range candidates {
		fmt.Fprintf(&catalogue, "- id=%d name=%q price=%.2f discount=%.2f\n",
			p.ID, p.Name, p.Price, p.Discount)
	}

	var prompt strings.Builder
	prompt.WriteString("You match a shopper's request against a product catalogue.\n\n")
	prompt.WriteString("Catalogue:\n")
	prompt.WriteString(catalogue.String())
	prompt.WriteString("\nRequest: " + voiceCommand + "\n\n")
	prompt.WriteString("Reply with JSON only, no markdown, no explanation, exactly this shape:\n")
	prompt.WriteString(`{"ids": [1, 2], "message": "one short sentence for the shopper"}` + "\n")
	prompt.WriteString("List the ids of matching products, best match first. Use an empty array when nothing matches.")

	raw, err := s.callOpenAI(prompt.String())
	if err != nil {
		return nil, err
	}

	var reply aiSearchReply
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &reply); err != nil {
		logger.Error("AI search reply is not parseable", err, map[string]interface{}{
			"reply": raw,
		})
		return nil, ErrAIMalformedReply
	}

	byID := make(map[uint]model.Product, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	// keep the model's ranking, drop ids it invented
	products := make([]model.Product, 0, len(reply.IDs))
	for _, id := range reply.IDs {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return &SearchResult{Products: products, Message: reply.Message}, nil
}

// GenerateProductForm asks the model to draft the requested product form
// fields from a free-text description.
func (s *aiService) GenerateProductForm(req FormFillRequest) (*FormFillResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrAIQueryMissing
	}
	if s.config.OpenAI.APIKey == "" {
		return nil, ErrAINotConfigured
	}

	var b strings.Builder
	b.WriteString("You fill in a product form for an online store from a short description.\n\n")
	b.WriteString("Description: " + req.Prompt + "\n")
	if len(req.Fields) > 0 {
		b.WriteString("Form fields to fill: " + strings.Join(req.Fields, ", ") + "\n")
	}
	if len(req.Priorities) > 0 {
		b.WriteString("Fill these first: " + strings.Join(req.Priorities, ", ") + "\n")
	}
	if len(req.Hashtags) > 0 {
		b.WriteString("Pick hashtags only from: " + strings.Join(req.Hashtags, ", ") + "\n")
	}
	b.WriteString("\nReply with JSON only, no markdown, no explanation, exactly this shape:\n")
	b.WriteString(`{"defaultValues": {}, "properties": [{"name": "", "value": ""}], "hashtags": [], "message": ""}` + "\n")
	b.WriteString("defaultValues maps each requested form field to its value. ")
	b.WriteString("Leave out fields you cannot infer and never invent a price.")

	raw, err := s.callOpenAI(b.String())
	if err != nil {
		return nil, err
	}

	var fill FormFillResult
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &fill); err != nil {
		logger.Error("AI form-fill reply is not parseable", err, map[string]interface{}{
			"reply": raw,
		})
		return nil, ErrAIMalformedReply
	}
	if fill.DefaultValues == nil {
		fill.DefaultValues = map[string]interface{}{}
	}
	return &fill, nil
}

// stripCodeFences unwraps ```json ... ``` style fences some models insist on
// wrapping their output in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.ContainsAny(s[:idx], "{[") {
		// drop the language tag line (```json)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func (s *aiService) callOpenAI(prompt string) (string, error) {
	reqData := openAIRequest{
		Model: s.config.OpenAI.Model,
		Messages: []openAIMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0,
	}

	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequest("POST", s.config.OpenAI.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.config.OpenAI.APIKey))

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("OpenAI request failed", err, nil)
		return "", fmt.Errorf("%w: %v", ErrAIUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIUpstream, err)
	}

	var openAIResp openAIResponse
	if err := json.Unmarshal(body, &openAIResp); err != nil {
		return "", fmt.Errorf("%w: unexpected response with status %s", ErrAIUpstream, resp.Status)
	}

	// the provider's own message travels up so the caller can surface it
	if openAIResp.Error != nil {
		logger.Error("OpenAI returned an error", errors.New(openAIResp.Error.Message), map[string]interface{}{
			"type": openAIResp.Error.Type,
		})
		return "", fmt.Errorf("%w: %s", ErrAIUpstream, openAIResp.Error.Message)
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty reply with status %s", ErrAIUpstream, resp.Status)
	}

	return strings.TrimSpace(openAIResp.Choices[0].Message.Content), nil
}
