// README: Handler tests for the communicate endpoint.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"zephyr/internal/http/handlers"
	"zephyr/internal/speaker"
)

// stubSpeaker records the request it was given and returns a fixed reply.
type stubSpeaker struct {
	reply string
	last  speaker.Request
	calls int
}

func (s *stubSpeaker) Communicate(_ context.Context, req speaker.Request) string {
	s.calls++
	s.last = req
	return s.reply
}

func buildTestRouter(sp handlers.Communicator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewCommunicateHandler(sp)
	r.POST("/communicate", h.Communicate)
	return r
}

func doRequest(r *gin.Engine, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	} else {
		buf.WriteString("{not json")
	}
	req := httptest.NewRequest(http.MethodPost, "/communicate", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCommunicateReturnsResponse(t *testing.T) {
	stub := &stubSpeaker{reply: "hello Ada"}
	r := buildTestRouter(stub)

	w := doRequest(r, map[string]any{
		"message":             "hello",
		"is_new_conversation": true,
		"caller_display_name": "Ada",
		"device_location":     `{"coords":{"latitude":1.0,"longitude":2.0}}`,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response != "hello Ada" {
		t.Errorf("response = %q", resp.Response)
	}

	if stub.last.Message != "hello" || !stub.last.NewConversation || stub.last.CallerName != "Ada" {
		t.Errorf("engine request = %+v", stub.last)
	}
}

func TestCommunicateDefaultsDeviceLocationToNone(t *testing.T) {
	stub := &stubSpeaker{reply: "ok"}
	r := buildTestRouter(stub)

	w := doRequest(r, map[string]any{"message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if stub.last.DeviceLocation != "None" {
		t.Errorf("DeviceLocation = %q, want the literal None", stub.last.DeviceLocation)
	}
}

func TestCommunicateRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"malformed json", nil},
		{"missing message", map[string]any{"caller_display_name": "Ada"}},
		{"blank message", map[string]any{"message": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubSpeaker{reply: "ok"}
			r := buildTestRouter(stub)

			w := doRequest(r, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if stub.calls != 0 {
				t.Error("engine must not be invoked for invalid input")
			}
		})
	}
}
