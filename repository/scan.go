package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder with Postgres placeholders
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func nullString(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullStringPtr(v sql.NullString) *string {
	if v.Valid {
		return &v.String
	}
	return nil
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if v.Valid {
		return &v.Float64
	}
	return nil
}

func nullIntPtr(v sql.NullInt64) *int {
	if v.Valid {
		n := int(v.Int64)
		return &n
	}
	return nil
}

// decodeCodeList decodes a jsonb array column into a string slice.
// NULL and SQL empty values decode to nil (no constraint / nothing selected).
func decodeCodeList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, fmt.Errorf("failed to decode code list: %w", err)
	}
	return codes, nil
}

// encodeCodeList encodes a string slice for a jsonb column. A nil slice is
// stored as SQL NULL so "absent" and "empty" stay distinguishable.
func encodeCodeList(codes []string) (interface{}, error) {
	if codes == nil {
		return nil, nil
	}
	raw, err := json.Marshal(codes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode code list: %w", err)
	}
	return raw, nil
}
