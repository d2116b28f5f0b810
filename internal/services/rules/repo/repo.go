// Package repo provides postgres access for permitted expressions
package repo

import (
	"context"

	"transcriba/internal/modkit/repokit"
)

// Repo is the minimal persistence surface for expression rules
type Repo interface {
	ListExpressions(ctx context.Context, language string) ([]ExpressionRow, error)
	ListNormalizations(ctx context.Context, expressionID string) ([]string, error)
}

// ExpressionRow is one permitted expression as stored
type ExpressionRow struct {
	ID        string
	Original  string
	SelfValid bool
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) ListExpressions(ctx context.Context, language string) ([]ExpressionRow, error) {
	const sql = `
select id::text, original_expression, is_permitted_as_normalization
from permitted_expressions
where language_code = $1
order by original_expression asc
`
	rows, err := r.q.Query(ctx, sql, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpressionRow
	for rows.Next() {
		var er ExpressionRow
		if err := rows.Scan(&er.ID, &er.Original, &er.SelfValid); err != nil {
			return nil, err
		}
		out = append(out, er)
	}
	return out, rows.Err()
}

func (r *queries) ListNormalizations(ctx context.Context, expressionID string) ([]string, error) {
	const sql = `
select text
from expression_normalizations
where expression_id = $1
order by position asc, text asc
`
	rows, err := r.q.Query(ctx, sql, expressionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}
