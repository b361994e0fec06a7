package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// LibreClient is a minimal REST client for a LibreTranslate-compatible
// translation service.
type LibreClient struct {
	url    string
	apiKey string
	client *http.Client
}

type LibreConfig struct {
	URL       string
	APIKeyEnv string
	Timeout   time.Duration
}

func NewLibreClient(cfg LibreConfig) *LibreClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	key := ""
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
	}
	return &LibreClient{
		url:    cfg.URL,
		apiKey: key,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *LibreClient) Name() string { return "libretranslate" }

func (c *LibreClient) Detect(ctx context.Context, text string) (string, error) {
	var out []struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	}
	body := map[string]any{"q": text}
	if c.apiKey != "" {
		body["api_key"] = c.apiKey
	}
	if err := c.postJSON(ctx, c.url+"/detect", body, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("no language detected")
	}
	return out[0].Language, nil
}

func (c *LibreClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	if source == target {
		return text, nil
	}
	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	body := map[string]any{"q": text, "source": source, "target": target, "format": "text"}
	if c.apiKey != "" {
		body["api_key"] = c.apiKey
	}
	if err := c.postJSON(ctx, c.url+"/translate", body, &out); err != nil {
		return "", err
	}
	if out.TranslatedText == "" {
		return "", fmt.Errorf("empty translation result")
	}
	return out.TranslatedText, nil
}

func (c *LibreClient) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("translate POST %s failed: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
