package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agricopilot/pkg/ai"
	"agricopilot/pkg/chat/controller"
	kbservice "agricopilot/pkg/kb/service"
)

const maxKBContext = 6000

type ChatCtrl struct {
	aiClient ai.Client
	kb       kbservice.KBService
}

func New(aiClient ai.Client, kb kbservice.KBService) controller.ChatController {
	return &ChatCtrl{aiClient: aiClient, kb: kb}
}

// Chat handles POST /api/chat: free-text farmer question, grounded on any
// matching advisory snippets from the knowledge base.
func (h *ChatCtrl) Chat(c echo.Context) error {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	kbCtx := ""
	if h.kb != nil && strings.TrimSpace(req.Message) != "" {
		kbCtx = h.kb.Context(req.Message, maxKBContext)
	}

	reply := h.aiClient.Chat(c.Request().Context(), req.Message, kbCtx)
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}
