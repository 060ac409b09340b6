package database

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type recordingDB struct {
	query string
	vars  map[string]interface{}
	calls int
	err   error
}

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.calls++
	r.query = query
	r.vars = vars
	return nil, r.err
}

func (r *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := r.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return FirstRecord(results)
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func TestFirstRecord(t *testing.T) {
	t.Parallel()
	record := map[string]interface{}{"id": "coffee:abc"}

	tests := []struct {
		name    string
		results []interface{}
		want    interface{}
		wantErr error
	}{
		{"no statements", nil, nil, ErrNotFound},
		{"empty result", []interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{}}}, nil, ErrNotFound},
		{"null result", []interface{}{map[string]interface{}{"status": "OK", "result": nil}}, nil, ErrNotFound},
		{"first record", []interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{record, "second"}}}, record, nil},
		{"scalar", []interface{}{map[string]interface{}{"status": "OK", "result": float64(3)}}, float64(3), nil},
		{"unwrapped", []interface{}{"raw"}, "raw", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FirstRecord(tt.results)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if gotMap, ok := got.(map[string]interface{}); ok {
				if gotMap["id"] != "coffee:abc" {
					t.Errorf("unexpected record %v", gotMap)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestQueryError_Classification(t *testing.T) {
	t.Parallel()
	dup := queryError("Database index `review_user_coffee` already contains [user:a, coffee:b]")
	if !errors.Is(dup, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", dup)
	}
	if !strings.Contains(dup.Error(), "review_user_coffee") {
		t.Errorf("expected message to be kept, got %v", dup)
	}

	other := queryError("Parse error: unexpected token")
	if !errors.Is(other, ErrQuery) {
		t.Errorf("expected ErrQuery, got %v", other)
	}
	if errors.Is(other, ErrDuplicate) {
		t.Error("parse error should not be a duplicate")
	}
}

func TestSurrealDB_NotConnected(t *testing.T) {
	t.Parallel()
	db := NewSurrealDB(Config{Host: "localhost", Port: "8000"})

	if _, err := db.Query(context.Background(), "INFO FOR DB", nil); !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
	if err := db.Ping(context.Background()); !errors.Is(err, ErrConnection) {
		t.Errorf("expected ErrConnection from Ping, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("expected Close on unconnected db to succeed, got %v", err)
	}
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	t.Parallel()
	tb := NewTxBuilder()
	first := tb.Add("CREATE quiz_question SET question_id = $id, question = $question", map[string]interface{}{
		"id":       "roast",
		"question": "How do you like it?",
	})
	second := tb.Add("CREATE quiz_option SET question_id = $id", map[string]interface{}{"id": "roast"})

	query, vars := tb.Build()

	if first["id"] != "v1_id" || second["id"] != "v2_id" {
		t.Errorf("unexpected renames %v %v", first, second)
	}
	if !strings.HasPrefix(query, "BEGIN TRANSACTION;\n") || !strings.HasSuffix(query, "COMMIT TRANSACTION;") {
		t.Errorf("expected transaction block, got %q", query)
	}
	if !strings.Contains(query, "question = $v1_question") {
		t.Errorf("expected $question to be renamed, got %q", query)
	}
	if !strings.Contains(query, "SET question_id = $v2_id;") {
		t.Errorf("expected second statement terminated, got %q", query)
	}
	if len(vars) != 3 || vars["v2_id"] != "roast" {
		t.Errorf("unexpected vars %v", vars)
	}
}

func TestTxBuilder_PrefixVariables(t *testing.T) {
	t.Parallel()
	tb := NewTxBuilder()
	tb.Add("UPDATE $coffee SET id = $coffee_id", map[string]interface{}{
		"coffee":    "coffee:a",
		"coffee_id": "a",
	})

	query, _ := tb.Build()

	if !strings.Contains(query, "UPDATE $v1_coffee SET id = $v1_coffee_id;") {
		t.Errorf("expected both variables renamed independently, got %q", query)
	}
}

func TestAtomicBatch_Execute(t *testing.T) {
	t.Parallel()
	db := &recordingDB{}

	batch := NewAtomicBatch().
		Add("CREATE a SET x = $x", map[string]interface{}{"x": 1}).
		Add("CREATE b SET x = $x", map[string]interface{}{"x": 2})

	if batch.Len() != 2 {
		t.Fatalf("expected 2 statements, got %d", batch.Len())
	}
	if _, err := batch.Execute(context.Background(), db); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if db.calls != 1 {
		t.Errorf("expected a single round trip, got %d", db.calls)
	}
	if db.vars["v1_x"] != 1 || db.vars["v2_x"] != 2 {
		t.Errorf("unexpected vars %v", db.vars)
	}
}

func TestAtomicBatch_EmptyIsNoop(t *testing.T) {
	t.Parallel()
	db := &recordingDB{}

	if _, err := NewAtomicBatch().Execute(context.Background(), db); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if db.calls != 0 {
		t.Errorf("expected no queries, got %d", db.calls)
	}
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	t.Parallel()
	db := &recordingDB{err: ErrDuplicate}

	_, err := NewAtomicBatch().Add("CREATE a", nil).Execute(context.Background(), db)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}
