package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"oakfield-backend/models"
	"oakfield-backend/service"
)

// StrategistController handles the stateless analyst chat endpoint
type StrategistController struct {
	strategist *service.StrategistService
}

// NewStrategistController creates a new StrategistController
func NewStrategistController(strategist *service.StrategistService) *StrategistController {
	return &StrategistController{
		strategist: strategist,
	}
}

// Chat handles POST /api/v1/oakfield/strategist/chat, streaming a structured
// JSON analysis as plain text
func (c *StrategistController) Chat(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 StrategistChat: Received %s request to %s", r.Method, r.URL.Path)

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ StrategistChat: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		log.Printf("❌ StrategistChat: content is required")
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	c.strategist.Chat(r.Context(), req.Content, func(chunk string) {
		if _, err := w.Write([]byte(chunk)); err != nil {
			log.Printf("❌ StrategistChat: Error writing chunk: %v", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	})

	log.Printf("✅ StrategistChat: Completed stream")
}
