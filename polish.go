package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
)

const polishPrompt = `You are a poetic typewriter assistant for Chinese text. Take the following raw text and rewrite it to be slightly more profound, poetic, or witty in Chinese, but keep it short (max 20 words). It should sound like a fortune cookie or a diary entry.

Input: "%s"`

var (
	ErrMissingCredential = errors.New("polish: no api key configured")
	ErrEmptyResponse     = errors.New("polish: empty response")
)

// PolishResult is either a rewritten text or the reason there is none.
type PolishResult struct {
	Text string
	Err  error
}

type Polisher interface {
	Polish(ctx context.Context, text string) PolishResult
}

// GeminiPolisher rewrites text through the generateContent REST endpoint.
type GeminiPolisher struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func NewGeminiPolisher(cfg *Config) *GeminiPolisher {
	return &GeminiPolisher{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.PolishTimeout},
	}
}

func (g *GeminiPolisher) Polish(ctx context.Context, text string) PolishResult {
	if g == nil || g.apiKey == "" {
		return PolishResult{Err: ErrMissingCredential}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(polishPrompt, text)}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.9,
			MaxOutputTokens: 256,
		},
	})
	if err != nil {
		return PolishResult{Err: fmt.Errorf("polish: encode request: %w", err)}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return PolishResult{Err: fmt.Errorf("polish: build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return PolishResult{Err: fmt.Errorf("polish: send request: %w", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return PolishResult{Err: fmt.Errorf("polish: read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return PolishResult{Err: fmt.Errorf("polish: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return PolishResult{Err: fmt.Errorf("polish: decode response: %w", err)}
	}

	var out strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			out.WriteString(p.Text)
		}
	}
	polished := strings.TrimSpace(out.String())
	if polished == "" {
		return PolishResult{Err: ErrEmptyResponse}
	}
	return PolishResult{Text: polished}
}

// polishText always yields printable text: the rewrite, or the input unchanged
// when the rewrite failed for any reason.
func polishText(ctx context.Context, p Polisher, text string, logger *slog.Logger) string {
	if p == nil {
		return text
	}
	res := p.Polish(ctx, text)
	if res.Err != nil {
		if errors.Is(res.Err, ErrMissingCredential) {
			logger.Warn("polish skipped, printing raw text", "reason", res.Err)
		} else {
			logger.Error("polish failed, printing raw text", "error", res.Err)
		}
		return text
	}
	logger.Debug("polish succeeded", "chars_in", len([]rune(text)), "chars_out", len([]rune(res.Text)))
	return res.Text
}
