package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"oakfield-backend/db"
	"oakfield-backend/models"
)

// ChatRepository handles database operations for strategist chat sessions
type ChatRepository struct{}

// NewChatRepository creates a new ChatRepository
func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

// Ensure ChatRepository implements ChatRepositoryInterface
var _ ChatRepositoryInterface = (*ChatRepository)(nil)

// ListSessions returns sessions most recently updated first
func (r *ChatRepository) ListSessions(ctx context.Context) ([]models.ChatSession, error) {
	rows, err := psql.Select("session_id", "user_id", "title", "created_at", "updated_at").
		From("chat_sessions").
		OrderBy("updated_at DESC").
		RunWith(db.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ChatSession
	for rows.Next() {
		var s models.ChatSession
		if err := rows.Scan(&s.SessionID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateSession creates a new chat session with a generated id
func (r *ChatRepository) CreateSession(ctx context.Context, title, userID string) (*models.ChatSession, error) {
	now := time.Now().UTC()
	session := &models.ChatSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := psql.Insert("chat_sessions").
		Columns("session_id", "user_id", "title", "created_at", "updated_at").
		Values(session.SessionID, session.UserID, session.Title, session.CreatedAt, session.UpdatedAt).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by id
func (r *ChatRepository) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	var s models.ChatSession
	err := psql.Select("session_id", "user_id", "title", "created_at", "updated_at").
		From("chat_sessions").
		Where(sq.Eq{"session_id": sessionID}).
		RunWith(db.DB).
		QueryRowContext(ctx).
		Scan(&s.SessionID, &s.UserID, &s.Title, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// RenameSession updates a session title
func (r *ChatRepository) RenameSession(ctx context.Context, sessionID, title string) error {
	result, err := psql.Update("chat_sessions").
		Set("title", title).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"session_id": sessionID}).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to rename session: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

// DeleteSession removes a session and its messages in one transaction, so a
// failed session delete cannot strand a message-less session
func (r *ChatRepository) DeleteSession(ctx context.Context, sessionID string) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := psql.Delete("chat_messages").
		Where(sq.Eq{"session_id": sessionID}).
		RunWith(tx).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete session messages: %w", err)
	}

	result, err := psql.Delete("chat_sessions").
		Where(sq.Eq{"session_id": sessionID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session delete: %w", err)
	}
	return nil
}

// ListMessages returns a session's messages oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	rows, err := psql.Select("id", "session_id", "role", "content", "created_at").
		From("chat_messages").
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC").
		RunWith(db.DB).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// AppendMessage stores one turn and bumps the session to the top of the list
func (r *ChatRepository) AppendMessage(ctx context.Context, sessionID, role, content string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := psql.Insert("chat_messages").
		Columns("id", "session_id", "role", "content", "created_at").
		Values(msg.ID, msg.SessionID, msg.Role, msg.Content, msg.CreatedAt).
		RunWith(db.DB).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	if _, err := psql.Update("chat_sessions").
		Set("updated_at", msg.CreatedAt).
		Where(sq.Eq{"session_id": sessionID}).
		RunWith(db.DB).
		ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	return msg, nil
}
