package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agricopilot/pkg/logger"
	"agricopilot/pkg/plan"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

const chatFallbackReply = "I'm having trouble connecting right now. Please try asking again later."

type gemini struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

// NewGemini creates a client for the Gemini generateContent API.
func NewGemini(apiKey, model string) Client {
	return &gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpc:   &http.Client{Timeout: 25 * time.Second},
	}
}

func (c *gemini) Available() bool { return true }

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"inline_data,omitempty"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
}

func (c *gemini) generate(ctx context.Context, parts []geminiPart) (string, error) {
	var reqBody geminiRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: parts})

	b, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api status %d", resp.StatusCode)
	}

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response generated")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

func (c *gemini) AnalyzeImage(ctx context.Context, image []byte, mimeType, mode string) (plan.Diagnosis, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	inline := &struct {
		MimeType string `json:"mime_type"`
		Data     string `json:"data"`
	}{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(image)}

	text, err := c.generate(ctx, []geminiPart{
		{Text: promptForMode(mode)},
		{InlineData: inline},
	})
	if err != nil {
		return plan.Diagnosis{}, fmt.Errorf("vision call: %w", err)
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return plan.Diagnosis{}, fmt.Errorf("vision response: %w", err)
	}
	return plan.Normalize(raw), nil
}

func (c *gemini) Chat(ctx context.Context, message, kbContext string) string {
	text, err := c.generate(ctx, []geminiPart{{Text: renderChatPrompt(message, kbContext)}})
	if err != nil {
		logger.Log.Errorf("chatbot error: %v", err)
		return chatFallbackReply
	}
	return text
}

func (c *gemini) RecommendCrops(ctx context.Context, profile RecommendContext) (map[string]any, error) {
	text, err := c.generate(ctx, []geminiPart{{Text: renderRecommendPrompt(profile)}})
	if err != nil {
		return nil, err
	}
	return extractJSONObject(text)
}

// extractJSONObject pulls everything from the first '{' to the last '}',
// ignoring any conversational text or markdown fences the model added.
func extractJSONObject(text string) (map[string]any, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in model output")
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return raw, nil
}
