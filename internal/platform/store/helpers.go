package store

import (
	"context"

	perr "transcriba/internal/platform/errors"
)

// Scanner maps one row into T
type Scanner[T any] func(Row) (T, error)

// One runs a single-row query and maps it with scan
// a missing row surfaces as ErrorCodeNotFound
func One[T any](ctx context.Context, q RowQuerier, sql string, scan Scanner[T], args ...any) (T, error) {
	var zero T
	out, err := scan(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if perr.IsNoRows(err) {
			return zero, perr.NotFoundf("record not found")
		}
		return zero, perr.FromPostgres(err, "query row")
	}
	return out, nil
}

// Many runs a multi-row query and maps each row with scan
func Many[T any](ctx context.Context, q RowQuerier, sql string, scan Scanner[T], args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query")
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan")
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "rows")
	}
	return out, nil
}

// Scalar runs a single-value query
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	return One(ctx, q, sql, func(r Row) (T, error) {
		var v T
		err := r.Scan(&v)
		return v, err
	}, args...)
}

// Exec runs a statement and returns affected rows
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, perr.FromPostgres(err, "exec")
	}
	return tag.RowsAffected(), nil
}
