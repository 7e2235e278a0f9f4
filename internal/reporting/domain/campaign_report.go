package reporting

import "time"

// Campaign is the subset of a brand campaign the reports need.
type Campaign struct {
	ID        string
	BrandID   string
	Title     string
	Category  string
	Status    string
	Budget    Amount
	StartDate time.Time
	EndDate   time.Time
}

// CampaignReportKey is the cache identity of a campaign P&L report.
type CampaignReportKey struct {
	CampaignID string
	Period     Period
}

func (k CampaignReportKey) String() string {
	return "campaign:" + k.CampaignID + "|" + k.Period.Key()
}

// CampaignTotals are the ledger aggregates of one campaign over a padded window.
type CampaignTotals struct {
	BrandPayments      Amount
	PlatformCommission Amount
	InfluencerPayouts  Amount
	PaymentCount       int
	InvoiceCount       int
	InfluencerCount    int
}

// CampaignPLReport is the profit-and-loss view of one campaign.
type CampaignPLReport struct {
	ID            string     `json:"id"`
	CampaignID    string     `json:"campaign_id"`
	BrandID       string     `json:"brand_id"`
	CampaignTitle string     `json:"campaign_title"`
	ReportPeriod  PeriodKind `json:"report_period"`
	PeriodStart   time.Time  `json:"period_start"`
	PeriodEnd     time.Time  `json:"period_end"`
	WindowStart   time.Time  `json:"window_start"`
	WindowEnd     time.Time  `json:"window_end"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	GeneratedBy   string     `json:"generated_by"`
	GeneratedAt   time.Time  `json:"generated_at"`

	Budget             Amount `json:"budget"`
	TotalRevenue       Amount `json:"total_revenue"`
	InfluencerPayouts  Amount `json:"influencer_payouts"`
	PlatformCommission Amount `json:"platform_commission"`
	TotalCosts         Amount `json:"total_costs"`
	NetProfit          Amount `json:"net_profit"`
	ProfitMargin       Amount `json:"profit_margin"`
	ROI                Amount `json:"roi"`
	BudgetUtilization  Amount `json:"budget_utilization"`

	PaymentCount    int `json:"payment_count"`
	InvoiceCount    int `json:"invoice_count"`
	InfluencerCount int `json:"influencer_count"`
}

// Period returns the nominal report period.
func (r *CampaignPLReport) Period() Period {
	return Period{Kind: r.ReportPeriod, Start: r.PeriodStart, End: r.PeriodEnd}
}

// Key returns the cache identity.
func (r *CampaignPLReport) Key() CampaignReportKey {
	return CampaignReportKey{CampaignID: r.CampaignID, Period: r.Period()}
}

// Clone returns a detached copy.
func (r *CampaignPLReport) Clone() *CampaignPLReport {
	if r == nil {
		return nil
	}
	copy := *r
	return &copy
}
