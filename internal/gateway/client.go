package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/arogya-mitra/arogyabot/internal/config"
	"github.com/arogya-mitra/arogyabot/internal/domain"
)

// Client talks to the inference backend. All three operations are
// fire-once with at-most-once semantics: a failure is terminal for that
// attempt and the caller decides whether to re-invoke.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type chatRequest struct {
	Msg      string `json:"msg"`
	Language string `json:"language,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

// InferText submits a chat message and returns the backend's answer.
func (c *Client) InferText(ctx context.Context, message, languageCode string) (string, error) {
	payload, err := json.Marshal(chatRequest{Msg: message, Language: languageCode})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/get", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed: status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if chatResp.Answer == "" {
		return "", fmt.Errorf("chat response: %w", domain.ErrInvalidResponse)
	}

	return chatResp.Answer, nil
}

// AnalyzeImage uploads a JPEG for analysis and returns the result text.
func (c *Client) AnalyzeImage(ctx context.Context, imageBytes []byte) (string, error) {
	body, contentType, err := multipartBody("image", "skin_image.jpg", imageBytes)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/analyze_image", body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("analyze request failed: status %d", resp.StatusCode)
	}

	var result struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if result.Result == "" {
		return "", fmt.Errorf("analyze response: %w", domain.ErrInvalidResponse)
	}

	return result.Result, nil
}

// TranscribeVoice uploads a recorded audio blob and returns the spoken
// reply the backend produced for it.
func (c *Client) TranscribeVoice(ctx context.Context, audioBytes []byte) (string, error) {
	body, contentType, err := multipartBody("audio", "recording.ogg", audioBytes)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/voice", body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("voice request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("voice request failed: status %d", resp.StatusCode)
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if result.Response == "" {
		return "", fmt.Errorf("voice response: %w", domain.ErrInvalidResponse)
	}

	return result.Response, nil
}

func multipartBody(field, filename string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
