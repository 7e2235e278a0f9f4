package application

import (
	"context"
	"errors"

	reporting "creator-finance/internal/reporting/domain"
)

// StatementViews reshapes generated statements into presentation views.
// A month of 0 selects the yearly statement.
type StatementViews struct {
	statements *StatementService
}

// NewStatementViews constructs the view service.
func NewStatementViews(statements *StatementService) (*StatementViews, error) {
	if statements == nil {
		return nil, errors.New("statement views: nil statement service")
	}
	return &StatementViews{statements: statements}, nil
}

// IncomeStatement returns the income statement of subject.
func (v *StatementViews) IncomeStatement(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.IncomeStatement, error) {
	current, err := v.current(ctx, subject, year, month)
	if err != nil {
		return nil, err
	}
	return reporting.NewIncomeStatement(current), nil
}

// BalanceSheet returns the balance sheet of subject.
func (v *StatementViews) BalanceSheet(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.BalanceSheet, error) {
	current, err := v.current(ctx, subject, year, month)
	if err != nil {
		return nil, err
	}
	return reporting.NewBalanceSheet(current), nil
}

// CashFlowStatement returns the cash flow statement of subject against the preceding period.
func (v *StatementViews) CashFlowStatement(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.CashFlowStatement, error) {
	current, previous, err := v.currentAndPrevious(ctx, subject, year, month)
	if err != nil {
		return nil, err
	}
	return reporting.NewCashFlowStatement(current, previous), nil
}

// FinancialAnalysis returns the ratio analysis of subject against the preceding period.
func (v *StatementViews) FinancialAnalysis(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.FinancialAnalysis, error) {
	current, previous, err := v.currentAndPrevious(ctx, subject, year, month)
	if err != nil {
		return nil, err
	}
	return reporting.NewFinancialAnalysis(current, previous), nil
}

func (v *StatementViews) current(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.Statement, error) {
	if month == 0 {
		return v.statements.Generate(ctx, subject, reporting.PeriodYearly, year, 0)
	}
	return v.statements.Generate(ctx, subject, reporting.PeriodMonthly, year, month)
}

func (v *StatementViews) currentAndPrevious(ctx context.Context, subject reporting.Subject, year, month int) (*reporting.Statement, *reporting.Statement, error) {
	current, err := v.current(ctx, subject, year, month)
	if err != nil {
		return nil, nil, err
	}
	previous, err := v.statements.GenerateForPeriod(ctx, subject, current.Period().Previous())
	if err != nil {
		return nil, nil, err
	}
	return current, previous, nil
}
