package einvoice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client: Uyumsoft entegratörüne giden tek çağrılık istemci.
// Retry yok; başarısız gönderim olduğu gibi kaydedilir.
type Client struct {
	BaseURL  string
	Username string
	Password string
	HTTP     *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// SubmitResult: entegratör cevabı, olduğu gibi saklanır.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// SubmitXML: e-fatura XML dokümanını gönderir.
func (c *Client) SubmitXML(ctx context.Context, payload string) (SubmitResult, error) {
	return c.submit(ctx, "/einvoice/send", []byte(payload), "application/xml")
}

// SubmitJSON: e-arşiv JSON dokümanını gönderir.
func (c *Client) SubmitJSON(ctx context.Context, payload []byte) (SubmitResult, error) {
	return c.submit(ctx, "/earchive/send", payload, "application/json")
}

func (c *Client) submit(ctx context.Context, path string, body []byte, contentType string) (SubmitResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return SubmitResult{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.Username, c.Password)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.WithError(err).Error("entegratör çağrısı başarısız")
		return SubmitResult{}, fmt.Errorf("entegratöre ulaşılamadı: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SubmitResult{}, err
	}

	var result SubmitResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.WithFields(log.Fields{"status_code": resp.StatusCode, "body": string(raw)}).
			Error("entegratör cevabı çözümlenemedi")
		return SubmitResult{}, fmt.Errorf("entegratör cevabı çözümlenemedi: %w", err)
	}

	if resp.StatusCode != http.StatusOK && result.Status == "" {
		result.Status = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	return result, nil
}
