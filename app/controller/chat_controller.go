package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"oakfield-backend/models"
	"oakfield-backend/repository"
	"oakfield-backend/service"
)

// ChatController handles HTTP requests for strategist chat sessions
type ChatController struct {
	repository repository.ChatRepositoryInterface
	strategist *service.StrategistService
}

// NewChatController creates a new ChatController
func NewChatController(repo repository.ChatRepositoryInterface, strategist *service.StrategistService) *ChatController {
	return &ChatController{
		repository: repo,
		strategist: strategist,
	}
}

// ListSessions handles GET /api/v1/chat/sessions
func (c *ChatController) ListSessions(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListSessions: Received %s request to %s", r.Method, r.URL.Path)

	sessions, err := c.repository.ListSessions(r.Context())
	if err != nil {
		repoError(w, "Failed to fetch sessions", err)
		return
	}

	log.Printf("✅ ListSessions: Successfully fetched %d sessions", len(sessions))
	writeJSON(w, http.StatusOK, sessions)
}

// CreateSession handles POST /api/v1/chat/sessions
func (c *ChatController) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateSession: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateSession: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New conversation"
	}

	session, err := c.repository.CreateSession(r.Context(), title, "oakfield")
	if err != nil {
		repoError(w, "Failed to create session", err)
		return
	}

	log.Printf("✅ CreateSession: Successfully created session %s", session.SessionID)
	writeJSON(w, http.StatusOK, session)
}

// GetSession handles GET /api/v1/chat/sessions/:id
func (c *ChatController) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := c.repository.GetSession(r.Context(), sessionID)
	if err != nil {
		repoError(w, "Failed to fetch session", err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// RenameSession handles PUT /api/v1/chat/sessions/:id
func (c *ChatController) RenameSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ RenameSession: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		log.Printf("❌ RenameSession: title is required")
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if err := c.repository.RenameSession(r.Context(), sessionID, req.Title); err != nil {
		repoError(w, "Failed to rename session", err)
		return
	}

	session, err := c.repository.GetSession(r.Context(), sessionID)
	if err != nil {
		repoError(w, "Failed to fetch session", err)
		return
	}

	log.Printf("✅ RenameSession: Successfully renamed session %s", sessionID)
	writeJSON(w, http.StatusOK, session)
}

// DeleteSession handles DELETE /api/v1/chat/sessions/:id
func (c *ChatController) DeleteSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := c.repository.DeleteSession(r.Context(), sessionID); err != nil {
		repoError(w, "Failed to delete session", err)
		return
	}

	log.Printf("✅ DeleteSession: Successfully deleted session %s", sessionID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "session_id": sessionID})
}

// ListMessages handles GET /api/v1/chat/sessions/:id/messages
func (c *ChatController) ListMessages(w http.ResponseWriter, r *http.Request, sessionID string) {
	if _, err := c.repository.GetSession(r.Context(), sessionID); err != nil {
		repoError(w, "Failed to fetch session", err)
		return
	}

	messages, err := c.repository.ListMessages(r.Context(), sessionID)
	if err != nil {
		repoError(w, "Failed to fetch messages", err)
		return
	}

	log.Printf("✅ ListMessages: Successfully fetched %d messages for session %s", len(messages), sessionID)
	writeJSON(w, http.StatusOK, messages)
}

// SendMessage handles POST /api/v1/chat/sessions/:id/messages.
// The user turn is stored, the strategist's answer is streamed back as plain
// text, and the complete answer is stored as the assistant turn once the
// stream ends.
func (c *ChatController) SendMessage(w http.ResponseWriter, r *http.Request, sessionID string) {
	log.Printf("📥 SendMessage: Received %s request to %s", r.Method, r.URL.Path)

	var req models.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ SendMessage: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		log.Printf("❌ SendMessage: content is required")
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	if _, err := c.repository.GetSession(r.Context(), sessionID); err != nil {
		repoError(w, "Failed to fetch session", err)
		return
	}

	if _, err := c.repository.AppendMessage(r.Context(), sessionID, "user", req.Content); err != nil {
		repoError(w, "Failed to store message", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	var full strings.Builder
	c.strategist.Chat(r.Context(), req.Content, func(chunk string) {
		full.WriteString(chunk)
		if _, err := w.Write([]byte(chunk)); err != nil {
			log.Printf("❌ SendMessage: Error writing chunk: %v", err)
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	})

	if full.Len() > 0 {
		if _, err := c.repository.AppendMessage(r.Context(), sessionID, "assistant", full.String()); err != nil {
			log.Printf("❌ SendMessage: Failed to store assistant reply: %v", err)
		}
	}

	log.Printf("✅ SendMessage: Completed strategist reply for session %s (%d bytes)", sessionID, full.Len())
}
