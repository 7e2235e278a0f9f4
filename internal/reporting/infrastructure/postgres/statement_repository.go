package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	reporting "creator-finance/internal/reporting/domain"
)

var statementHeaderColumns = []string{
	"id",
	"subject_id",
	"subject_type",
	"statement_type",
	"period_start",
	"period_end",
	"currency",
	"status",
	"generated_by",
	"generated_at",
}

// statementColumns is the full column list in scan order.
var statementColumns = func() string {
	var m reporting.Metrics
	cols := append([]string{}, statementHeaderColumns...)
	for _, f := range m.AmountFields() {
		cols = append(cols, f.Column)
	}
	for _, f := range m.CountFields() {
		cols = append(cols, f.Column)
	}
	return strings.Join(cols, ", ")
}()

// StatementRepository persists financial statements.
type StatementRepository struct {
	db   *sql.DB
	opts options
}

// NewStatementRepository constructs a repository.
func NewStatementRepository(db *sql.DB, opts ...Option) *StatementRepository {
	return &StatementRepository{db: db, opts: buildOptions(opts)}
}

// FindFinal loads the final statement for key, or nil when none exists.
func (r *StatementRepository) FindFinal(ctx context.Context, key reporting.StatementKey) (*reporting.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+statementColumns+`
FROM financial_statements
WHERE subject_id = $1 AND subject_type = $2 AND statement_type = $3
	AND period_start = $4 AND period_end = $5 AND status = 'final'`,
		key.Subject.ID, string(key.Subject.Kind), string(key.Period.Kind), key.Period.Start, key.Period.End,
	)
	return r.scan(row)
}

// Insert persists a statement. A second final statement for the same key yields ErrStatementExists.
func (r *StatementRepository) Insert(ctx context.Context, stmt *reporting.Statement) error {
	if r == nil || r.db == nil {
		return errNilDB
	}
	if stmt == nil {
		return reporting.ErrNilReport
	}
	args := []any{
		stmt.ID,
		stmt.SubjectID,
		string(stmt.SubjectKind),
		string(stmt.StatementType),
		stmt.PeriodStart,
		stmt.PeriodEnd,
		stmt.Currency,
		stmt.Status,
		stmt.GeneratedBy,
		stmt.GeneratedAt,
	}
	metrics := stmt.Metrics
	for _, f := range metrics.AmountFields() {
		args = append(args, *f.Amount)
	}
	for _, f := range metrics.CountFields() {
		args = append(args, *f.Count)
	}
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO financial_statements (`+statementColumns+`)
VALUES (`+strings.Join(placeholders, ", ")+`)`, args...)
	if isUniqueViolation(err) {
		return reporting.ErrStatementExists
	}
	return err
}

// GetByID loads a statement by id, or nil when absent.
func (r *StatementRepository) GetByID(ctx context.Context, id string) (*reporting.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	row := r.db.QueryRowContext(ctx, `
SELECT `+statementColumns+`
FROM financial_statements
WHERE id = $1`, id)
	return r.scan(row)
}

// ListBySubject returns the newest statements of a subject.
func (r *StatementRepository) ListBySubject(ctx context.Context, subject reporting.Subject, limit int) ([]*reporting.Statement, error) {
	if r == nil || r.db == nil {
		return nil, errNilDB
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+statementColumns+`
FROM financial_statements
WHERE subject_id = $1 AND subject_type = $2
ORDER BY period_start DESC, statement_type, generated_at DESC
LIMIT $3`, subject.ID, string(subject.Kind), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*reporting.Statement
	for rows.Next() {
		stmt, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatementRepository) scan(row rowScanner) (*reporting.Statement, error) {
	var (
		stmt        reporting.Statement
		subjectKind string
		periodKind  string
	)
	dest := []any{
		&stmt.ID,
		&stmt.SubjectID,
		&subjectKind,
		&periodKind,
		&stmt.PeriodStart,
		&stmt.PeriodEnd,
		&stmt.Currency,
		&stmt.Status,
		&stmt.GeneratedBy,
		&stmt.GeneratedAt,
	}
	for _, f := range stmt.Metrics.AmountFields() {
		dest = append(dest, f.Amount)
	}
	for _, f := range stmt.Metrics.CountFields() {
		dest = append(dest, f.Count)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	stmt.SubjectKind = reporting.SubjectKind(subjectKind)
	stmt.StatementType = reporting.PeriodKind(periodKind)
	stmt.PeriodStart = civil(stmt.PeriodStart, r.opts.location)
	stmt.PeriodEnd = civil(stmt.PeriodEnd, r.opts.location)
	stmt.GeneratedAt = stmt.GeneratedAt.UTC()
	return &stmt, nil
}
