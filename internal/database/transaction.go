package database

// Atomic writes
//
// SurrealDB transactions are issued as a single BEGIN/COMMIT block. Statements
// accumulate in memory and run together, so there is no isolation between
// Add() calls and nothing to roll back if the batch is never executed.
//
//	batch := NewAtomicBatch()
//	batch.Add("CREATE quiz_question CONTENT $question", vars1)
//	batch.Add("CREATE quiz_option CONTENT $option", vars2)
//	batch.Execute(ctx, db)  // All or nothing

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// TxBuilder builds a transaction block, namespacing variables per statement
// so $name in two statements becomes $v1_name and $v2_name.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	counter    int
}

// NewTxBuilder creates a new transaction builder
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		vars: make(map[string]interface{}),
	}
}

// Add appends a statement and returns the renamed variables
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	tb.counter++

	// Longest names first so $coffee does not clobber $coffee_id
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	renamed := make(map[string]string, len(vars))
	stmt := query
	for _, name := range names {
		newName := fmt.Sprintf("v%d_%s", tb.counter, name)
		stmt = strings.ReplaceAll(stmt, "$"+name, "$"+newName)
		tb.vars[newName] = vars[name]
		renamed[name] = newName
	}

	tb.statements = append(tb.statements, stmt)
	return renamed
}

// Len returns the number of statements added
func (tb *TxBuilder) Len() int {
	return len(tb.statements)
}

// Build returns the transaction query and merged variables
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		stmt = strings.TrimSpace(stmt)
		sb.WriteString(stmt)
		if !strings.HasSuffix(stmt, ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// AtomicBatch runs a handful of statements that must succeed together
type AtomicBatch struct {
	builder *TxBuilder
}

// NewAtomicBatch creates a new atomic batch
func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{builder: NewTxBuilder()}
}

// Add adds a statement to the batch
func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.builder.Add(query, vars)
	return ab
}

// Len returns the number of statements in the batch
func (ab *AtomicBatch) Len() int {
	return ab.builder.Len()
}

// Execute runs all statements as a single transaction and returns the
// per-statement results.
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) ([]interface{}, error) {
	query, vars := ab.builder.Build()
	if query == "" {
		return nil, nil
	}
	return db.Query(ctx, query, vars)
}
