// Package gemini is a thin client for the Gemini generateContent REST API.
// The API returns free-form text that is expected to contain embedded JSON;
// ExtractJSON pulls that substring out defensively so a malformed reply is a
// recoverable error for callers, never a crash.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var (
	// ErrMalformed marks a reply whose text contains no parsable JSON.
	ErrMalformed = errors.New("gemini: response contains no parsable JSON")

	// ErrEmpty marks a reply with no candidates or no text parts.
	ErrEmpty = errors.New("gemini: empty response")
)

type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Request is one prompt, optionally with an inline image and with Google
// Search grounding enabled.
type Request struct {
	Prompt    string
	ImageMIME string
	ImageData []byte
	UseSearch bool
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type tool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one prompt and returns the concatenated text of the first
// candidate.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	parts := []part{{Text: req.Prompt}}
	if len(req.ImageData) > 0 {
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: req.ImageMIME,
			Data:     base64.StdEncoding.EncodeToString(req.ImageData),
		}})
	}

	body := generateRequest{Contents: []content{{Parts: parts}}}
	if req.UseSearch {
		body.Tools = []tool{{}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: API returned %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini: API error %d: %s", out.Error.Code, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmpty
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", ErrEmpty
	}
	return text.String(), nil
}

// GenerateJSON generates text, extracts the embedded JSON and unmarshals it
// into out.
func (c *Client) GenerateJSON(ctx context.Context, req Request, out any) error {
	text, err := c.Generate(ctx, req)
	if err != nil {
		return err
	}

	jsonText, err := ExtractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonText), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// ExtractJSON returns the outermost JSON object or array embedded in free
// text. Models often wrap their JSON in prose or markdown fences.
func ExtractJSON(text string) (string, error) {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, opener, closer := objStart, byte('{'), byte('}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, opener, closer = arrStart, '[', ']'
	}
	if start < 0 {
		return "", ErrMalformed
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == opener:
			depth++
		case ch == closer:
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if !json.Valid([]byte(candidate)) {
					return "", ErrMalformed
				}
				return candidate, nil
			}
		}
	}
	return "", ErrMalformed
}
