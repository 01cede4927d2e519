package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fambalance/internal/config"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GenerativeLanguageScope is the OAuth2 scope for Application Default Credentials
const GenerativeLanguageScope = "https://www.googleapis.com/auth/generative-language"

// GeminiClient calls the Gemini generateContent endpoint
type GeminiClient struct {
	client *resty.Client
	model  string
	apiKey string
	tokens oauth2.TokenSource
}

// NewGeminiClient builds a client from configuration. An API key wins over
// ADC; with neither configured an error is returned.
func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	if cfg.APIKey != "" {
		return NewGeminiClientWithTokenSource(cfg.BaseURL, cfg.Model, cfg.APIKey, nil, cfg.Timeout), nil
	}
	if !cfg.UseADC {
		return nil, fmt.Errorf("no AI credentials configured")
	}

	ts, err := google.DefaultTokenSource(ctx, GenerativeLanguageScope)
	if err != nil {
		return nil, fmt.Errorf("failed to load application default credentials: %w", err)
	}
	return NewGeminiClientWithTokenSource(cfg.BaseURL, cfg.Model, "", ts, cfg.Timeout), nil
}

// NewGeminiClientWithTokenSource builds a client with explicit credentials.
// apiKey is sent as x-goog-api-key; otherwise tokens supplies a bearer token.
func NewGeminiClientWithTokenSource(baseURL, model, apiKey string, tokens oauth2.TokenSource, timeout time.Duration) *GeminiClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)

	return &GeminiClient{client: c, model: model, apiKey: apiKey, tokens: tokens}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Recommend sends one generateContent request. There are no retries.
func (g *GeminiClient) Recommend(ctx context.Context, req Request) ([]string, error) {
	body := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: Prompt(req)}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.8,
			TopP:            0.95,
			TopK:            64,
			MaxOutputTokens: 400,
		},
	}

	r := g.client.R().SetContext(ctx).SetBody(&body)
	switch {
	case g.apiKey != "":
		r.SetHeader("x-goog-api-key", g.apiKey)
	case g.tokens != nil:
		tok, err := g.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("gemini token: %w", err)
		}
		r.SetAuthToken(tok.AccessToken)
	}

	resp, err := r.Post(fmt.Sprintf("/v1beta/models/%s:generateContent", g.model))
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("gemini status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(gr.Candidates) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var text strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
		text.WriteString("\n")
	}
	return ParseLines(text.String()), nil
}
