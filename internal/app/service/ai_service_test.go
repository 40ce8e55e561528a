package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/karimelh/vitrine-backend/config"
	"github.com/karimelh/vitrine-backend/internal/app/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAIServer replies to every chat completion with the given content.
func fakeOpenAIServer(t *testing.T, content string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Zero(t, req.Temperature)

		resp := openAIResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message openAIMessage `json:"message"`
		}{Message: openAIMessage{Role: "assistant", Content: content}})
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(server.Close)
	return server
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newTestAIService(t *testing.T, f productServiceFixture, replyContent string) AIService {
	server := fakeOpenAIServer(t, replyContent)
	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.Model = "gpt-4o-mini"
	cfg.OpenAI.BaseURL = server.URL
	return NewAIService(cfg, repository.NewProductRepository(f.db))
}

func TestAIService_SearchProducts(t *testing.T) {
	f := setupProductServiceTest(t)

	first, err := f.products.CreateProduct(validProductInput("Linen Dress", f.leafID))
	require.NoError(t, err)
	second, err := f.products.CreateProduct(validProductInput("Silk Scarf", f.leafID))
	require.NoError(t, err)

	t.Run("Returns matches in model order with the message", func(t *testing.T) {
		reply := `{"ids": [` + itoa(second.ID) + `, ` + itoa(first.ID) + `], "message": "Found two matches."}`
		svc := newTestAIService(t, f, reply)

		result, err := svc.SearchProducts("something silky")
		require.NoError(t, err)
		require.Len(t, result.Products, 2)
		assert.Equal(t, second.ID, result.Products[0].ID)
		assert.Equal(t, first.ID, result.Products[1].ID)
		assert.Equal(t, "Found two matches.", result.Message)
	})

	t.Run("Drops invented ids", func(t *testing.T) {
		svc := newTestAIService(t, f, `{"ids": [`+itoa(first.ID)+`, 9999], "message": ""}`)

		result, err := svc.SearchProducts("a dress")
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
		assert.Equal(t, first.ID, result.Products[0].ID)
	})

	t.Run("Fenced reply is unwrapped", func(t *testing.T) {
		svc := newTestAIService(t, f, "```json\n{\"ids\": ["+itoa(first.ID)+"], \"message\": \"ok\"}\n```")

		result, err := svc.SearchProducts("a dress")
		require.NoError(t, err)
		require.Len(t, result.Products, 1)
	})

	t.Run("Empty id list", func(t *testing.T) {
		svc := newTestAIService(t, f, `{"ids": [], "message": "Nothing matched."}`)

		result, err := svc.SearchProducts("a yacht")
		require.NoError(t, err)
		assert.Empty(t, result.Products)
		assert.Equal(t, "Nothing matched.", result.Message)
	})

	t.Run("Prose instead of JSON", func(t *testing.T) {
		svc := newTestAIService(t, f, "Sure! The matching products are 1 and 2.")

		_, err := svc.SearchProducts("a dress")
		assert.ErrorIs(t, err, ErrAIMalformedReply)
	})

	t.Run("Blank command", func(t *testing.T) {
		svc := newTestAIService(t, f, `{"ids": [], "message": ""}`)

		_, err := svc.SearchProducts("   ")
		assert.ErrorIs(t, err, ErrAIQueryMissing)
	})
}

func TestAIService_SearchProducts_NotConfigured(t *testing.T) {
	f := setupProductServiceTest(t)

	cfg := &config.Config{}
	svc := NewAIService(cfg, repository.NewProductRepository(f.db))

	_, err := svc.SearchProducts("a dress")
	assert.ErrorIs(t, err, ErrAINotConfigured)
}

func TestAIService_SearchProducts_UpstreamError(t *testing.T) {
	f := setupProductServiceTest(t)

	_, err := f.products.CreateProduct(validProductInput("Linen Dress", f.leafID))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "You exceeded your current quota", "type": "insufficient_quota"}}`))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = server.URL
	svc := NewAIService(cfg, repository.NewProductRepository(f.db))

	_, err = svc.SearchProducts("a dress")
	assert.ErrorIs(t, err, ErrAIUpstream)
	// the provider's own message must survive to the error the handler echoes
	assert.ErrorContains(t, err, "You exceeded your current quota")
}

func TestAIService_GenerateProductForm(t *testing.T) {
	f := setupProductServiceTest(t)

	t.Run("Fills the form", func(t *testing.T) {
		reply := `{
			"defaultValues": {"name": "Linen Dress", "price": 49.9},
			"properties": [{"name": "Fabric", "value": "Linen"}],
			"hashtags": ["summer"],
			"message": "Drafted from your description."
		}`
		svc := newTestAIService(t, f, reply)

		fill, err := svc.GenerateProductForm(FormFillRequest{
			Fields:   []string{"name", "price"},
			Prompt:   "a light linen summer dress around 50 euros",
			Hashtags: []string{"summer", "linen"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Linen Dress", fill.DefaultValues["name"])
		assert.Equal(t, 49.9, fill.DefaultValues["price"])
		require.Len(t, fill.Properties, 1)
		assert.Equal(t, "Fabric", fill.Properties[0].Name)
		assert.Equal(t, []string{"summer"}, fill.Hashtags)
	})

	t.Run("Missing defaultValues comes back as an empty map", func(t *testing.T) {
		svc := newTestAIService(t, f, `{"properties": [], "hashtags": [], "message": "ok"}`)

		fill, err := svc.GenerateProductForm(FormFillRequest{Prompt: "a dress"})
		require.NoError(t, err)
		assert.NotNil(t, fill.DefaultValues)
		assert.Empty(t, fill.DefaultValues)
	})

	t.Run("Malformed reply", func(t *testing.T) {
		svc := newTestAIService(t, f, "I cannot help with that.")

		_, err := svc.GenerateProductForm(FormFillRequest{Prompt: "a dress"})
		assert.ErrorIs(t, err, ErrAIMalformedReply)
	})

	t.Run("Blank prompt", func(t *testing.T) {
		svc := newTestAIService(t, f, `{}`)

		_, err := svc.GenerateProductForm(FormFillRequest{})
		assert.ErrorIs(t, err, ErrAIQueryMissing)
	})
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Bare JSON", `{"ids": [1]}`, `{"ids": [1]}`},
		{"Json fence", "```json\n{\"ids\": [1]}\n```", `{"ids": [1]}`},
		{"Anonymous fence", "```\n{\"ids\": [1]}\n```", `{"ids": [1]}`},
		{"Fence on one line", "```{\"ids\": [1]}```", `{"ids": [1]}`},
		{"Surrounding whitespace", "  \n```json\n[1, 2]\n```\n  ", "[1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}
