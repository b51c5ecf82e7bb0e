// README: Communicate handler (the single user-facing chat operation).
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"zephyr/internal/speaker"
)

// Communicator is what the handler needs from the fulfilment engine.
type Communicator interface {
	Communicate(ctx context.Context, req speaker.Request) string
}

type CommunicateHandler struct {
	speaker Communicator
}

func NewCommunicateHandler(sp Communicator) *CommunicateHandler {
	return &CommunicateHandler{speaker: sp}
}

type communicateReq struct {
	Message           string `json:"message" binding:"required"`
	IsNewConversation bool   `json:"is_new_conversation"`
	CallerDisplayName string `json:"caller_display_name"`

	// DeviceLocation is either the literal "None" or a JSON-encoded
	// structure with coords.latitude/coords.longitude, passed through
	// as-is to the engine.
	DeviceLocation string `json:"device_location"`
}

type communicateResp struct {
	Response string `json:"response"`
}

// Communicate handles POST /communicate.
func (h *CommunicateHandler) Communicate(c *gin.Context) {
	var req communicateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}
	if req.DeviceLocation == "" {
		req.DeviceLocation = "None"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	response := h.speaker.Communicate(ctx, speaker.Request{
		Message:         req.Message,
		NewConversation: req.IsNewConversation,
		CallerName:      req.CallerDisplayName,
		DeviceLocation:  req.DeviceLocation,
	})

	writeJSON(c, http.StatusOK, communicateResp{Response: response})
}
