// Package translate looks words up in Google's public translation endpoint.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"babble-bot/pkg/ratelimit"
)

const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

type Result struct {
	Text       string
	SourceLang string
}

// Translator turns text into targetLang.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (Result, error)
}

// Google is a Translator backed by the keyless "gtx" client endpoint.
type Google struct {
	Endpoint string
	Client   *http.Client
	Limiter  *ratelimit.AdaptiveLimiter
}

func NewGoogle(endpoint string, timeout time.Duration) *Google {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Google{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
		Limiter:  ratelimit.NewAdaptiveLimiter(2, 0.2, 5, 0.5, 0.5),
	}
}

func (g *Google) Translate(ctx context.Context, text, targetLang string) (Result, error) {
	if g.Limiter != nil {
		if err := g.Limiter.Wait(ctx); err != nil {
			return Result{}, err
		}
	}

	res, err := g.translate(ctx, text, targetLang)
	if g.Limiter != nil {
		g.Limiter.Observe(err)
	}
	return res, err
}

func (g *Google) translate(ctx context.Context, text, targetLang string) (Result, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", targetLang)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, &ratelimit.StatusError{Code: resp.StatusCode, Op: "translate"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	return parseResponse(body)
}

// parseResponse reads the nested-array payload:
// [[["translated","original",...],...],null,"de",...]
func parseResponse(body []byte) (Result, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{}, fmt.Errorf("unmarshal error: %w", err)
	}
	if len(raw) < 1 {
		return Result{}, fmt.Errorf("unexpected top-level structure")
	}

	var sentences [][]any
	if err := json.Unmarshal(raw[0], &sentences); err != nil {
		return Result{}, fmt.Errorf("unexpected sentences structure: %w", err)
	}

	var translated strings.Builder
	for _, pair := range sentences {
		if len(pair) < 1 {
			continue
		}
		if str, ok := pair[0].(string); ok {
			translated.WriteString(str)
		}
	}

	res := Result{Text: translated.String()}
	if len(raw) > 2 {
		_ = json.Unmarshal(raw[2], &res.SourceLang)
	}
	if res.Text == "" {
		return Result{}, fmt.Errorf("empty translation")
	}
	return res, nil
}
