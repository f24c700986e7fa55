package models

import "time"

// ChatSession is one strategist conversation
type ChatSession struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn in a session
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSessionRequest is the body for POST /chat/sessions
type CreateSessionRequest struct {
	Title string `json:"title"`
}

// MessageRequest is the body for sending a message or a strategist query
type MessageRequest struct {
	Content string `json:"content"`
}
