package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricopilot/entities"
	"agricopilot/pkg/ai"
	"agricopilot/pkg/plan"
)

type echoAI struct{}

func (echoAI) Available() bool { return true }

func (echoAI) AnalyzeImage(ctx context.Context, image []byte, mimeType, mode string) (plan.Diagnosis, error) {
	return plan.Diagnosis{}, nil
}

func (echoAI) Chat(ctx context.Context, message, kbContext string) string {
	return "answer to: " + message + " [ctx:" + kbContext + "]"
}

func (echoAI) RecommendCrops(ctx context.Context, p ai.RecommendContext) (map[string]any, error) {
	return nil, nil
}

type stubKB struct {
	ctx     string
	queried string
}

func (s *stubKB) UpsertDocument(title, tags, text, sourceURL string) (*entities.AdvisoryDoc, int, error) {
	return nil, 0, nil
}

func (s *stubKB) Search(query string, k int) ([]entities.AdvisoryChunk, error) { return nil, nil }

func (s *stubKB) DocsMeta(ids []uint) (map[uint]entities.AdvisoryDoc, error) { return nil, nil }

func (s *stubKB) Context(query string, maxLen int) string {
	s.queried = query
	return s.ctx
}

func chatRequest(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestChatGroundsReplyOnKB(t *testing.T) {
	kb := &stubKB{ctx: "\n---\nblight advisory"}
	h := New(echoAI{}, kb)

	c, rec := chatRequest(echo.New(), `{"message": "What is blight?"}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["reply"], "What is blight?")
	assert.Contains(t, body["reply"], "blight advisory")
	assert.Equal(t, "What is blight?", kb.queried)
}

func TestChatEmptyMessageSkipsKBLookup(t *testing.T) {
	kb := &stubKB{ctx: "should not appear"}
	h := New(echoAI{}, kb)

	c, rec := chatRequest(echo.New(), `{"message": "  "}`)
	require.NoError(t, h.Chat(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, kb.queried)
}
