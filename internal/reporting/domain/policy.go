package reporting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy holds the business constants applied by the calculators.
// They are policy, not measurements, and are injected per deployment.
type Policy struct {
	// RevenueDeductionRate is deducted from gross revenue (returns, discounts, chargebacks).
	RevenueDeductionRate decimal.Decimal
	// MarketingExpenseShare and AdminExpenseShare split raw operating expense; the rest is "other".
	MarketingExpenseShare decimal.Decimal
	AdminExpenseShare     decimal.Decimal
	// TaxRate applies to positive income before tax.
	TaxRate decimal.Decimal
	// CampaignWindowPaddingDays widens the campaign ledger window on both sides.
	// Payments without a campaign id that fall inside the padded window of two adjacent
	// campaigns of one brand are counted by both reports.
	CampaignWindowPaddingDays int
	// CampaignMatchUnattributed includes brand payments lacking a campaign id that fall inside
	// the padded window.
	CampaignMatchUnattributed bool
	// Currency is stamped on generated reports.
	Currency string
}

// DefaultPolicy returns the platform's standard constants.
func DefaultPolicy() Policy {
	return Policy{
		RevenueDeductionRate:      decimal.RequireFromString("0.02"),
		MarketingExpenseShare:     decimal.RequireFromString("0.30"),
		AdminExpenseShare:         decimal.RequireFromString("0.20"),
		TaxRate:                   decimal.RequireFromString("0.25"),
		CampaignWindowPaddingDays: 7,
		CampaignMatchUnattributed: true,
		Currency:                  "USD",
	}
}

// Validate checks rates are within [0, 1] and the expense split does not exceed the whole.
func (p Policy) Validate() error {
	one := decimal.NewFromInt(1)
	rates := map[string]decimal.Decimal{
		"revenue_deduction_rate":  p.RevenueDeductionRate,
		"marketing_expense_share": p.MarketingExpenseShare,
		"admin_expense_share":     p.AdminExpenseShare,
		"tax_rate":                p.TaxRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s=%s out of [0,1]", ErrInvalidPolicy, name, rate.String())
		}
	}
	if p.MarketingExpenseShare.Add(p.AdminExpenseShare).GreaterThan(one) {
		return fmt.Errorf("%w: marketing and admin shares exceed 1", ErrInvalidPolicy)
	}
	if p.CampaignWindowPaddingDays < 0 {
		return fmt.Errorf("%w: negative campaign window padding", ErrInvalidPolicy)
	}
	if p.Currency == "" {
		return fmt.Errorf("%w: empty currency", ErrInvalidPolicy)
	}
	return nil
}
