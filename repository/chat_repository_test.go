package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"oakfield-backend/db"
)

// stmtLog records every statement a connection runs, in order, so tests can
// assert on transaction boundaries
type stmtLog struct {
	entries []string
	failOn  string
}

type logDriver struct{ log *stmtLog }

func (d *logDriver) Open(string) (driver.Conn, error) { return &logConn{d.log}, nil }

type logConn struct{ log *stmtLog }

func (c *logConn) Prepare(query string) (driver.Stmt, error) { return &logStmt{c.log, query}, nil }
func (c *logConn) Close() error                              { return nil }
func (c *logConn) Begin() (driver.Tx, error) {
	c.log.entries = append(c.log.entries, "BEGIN")
	return &logTx{c.log}, nil
}

type logTx struct{ log *stmtLog }

func (t *logTx) Commit() error {
	t.log.entries = append(t.log.entries, "COMMIT")
	return nil
}

func (t *logTx) Rollback() error {
	t.log.entries = append(t.log.entries, "ROLLBACK")
	return nil
}

type logStmt struct {
	log   *stmtLog
	query string
}

func (s *logStmt) Close() error  { return nil }
func (s *logStmt) NumInput() int { return -1 }

func (s *logStmt) Exec(args []driver.Value) (driver.Result, error) {
	if s.log.failOn != "" && strings.Contains(s.query, s.log.failOn) {
		return nil, errors.New("forced statement failure")
	}
	s.log.entries = append(s.log.entries, s.query)
	return driver.RowsAffected(1), nil
}

func (s *logStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

var chatTestLog = &stmtLog{}

func init() {
	sql.Register("chatlogger", &logDriver{chatTestLog})
}

func withLoggedDB(t *testing.T) {
	t.Helper()
	chatTestLog.entries = nil
	chatTestLog.failOn = ""

	conn, err := sql.Open("chatlogger", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	old := db.DB
	db.DB = conn
	t.Cleanup(func() {
		db.DB = old
		conn.Close()
	})
}

func TestDeleteSessionRunsInOneTransaction(t *testing.T) {
	withLoggedDB(t)

	repo := NewChatRepository()
	if err := repo.DeleteSession(context.Background(), "abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := chatTestLog.entries
	if len(entries) != 4 {
		t.Fatalf("entries = %v, want BEGIN, two deletes, COMMIT", entries)
	}
	if entries[0] != "BEGIN" || entries[3] != "COMMIT" {
		t.Fatalf("deletes must be bracketed by a transaction, got %v", entries)
	}
	if !strings.Contains(entries[1], "chat_messages") {
		t.Fatalf("entries[1] = %q, want the message delete first", entries[1])
	}
	if !strings.Contains(entries[2], "chat_sessions") {
		t.Fatalf("entries[2] = %q, want the session delete second", entries[2])
	}
}

func TestDeleteSessionRollsBackWhenSessionDeleteFails(t *testing.T) {
	withLoggedDB(t)
	chatTestLog.failOn = "chat_sessions"

	repo := NewChatRepository()
	if err := repo.DeleteSession(context.Background(), "abc"); err == nil {
		t.Fatal("expected error when the session delete fails")
	}

	entries := chatTestLog.entries
	if len(entries) == 0 || entries[len(entries)-1] != "ROLLBACK" {
		t.Fatalf("message delete must be rolled back, got %v", entries)
	}
	for _, entry := range entries {
		if entry == "COMMIT" {
			t.Fatalf("transaction must not commit after a failure, got %v", entries)
		}
	}
}
