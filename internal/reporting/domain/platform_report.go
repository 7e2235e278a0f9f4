package reporting

import "time"

// PlatformTotals are the platform-wide aggregates of one period.
type PlatformTotals struct {
	GrossTransactionVolume Amount
	PlatformCommission     Amount
	ProcessingFees         Amount
	Refunds                Amount
	PaidInvoiceCount       int
	NewUsers               int
	NewBrands              int
	NewInfluencers         int
	NewCampaigns           int
	ActiveCampaigns        int
}

// PlatformReportKey is the cache identity of a platform revenue report.
type PlatformReportKey struct {
	Period Period
}

func (k PlatformReportKey) String() string { return "platform|" + k.Period.Key() }

// PlatformRevenueReport aggregates platform revenue and growth for one period.
type PlatformRevenueReport struct {
	ID          string     `json:"id"`
	ReportType  PeriodKind `json:"report_type"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	GeneratedBy string     `json:"generated_by"`
	GeneratedAt time.Time  `json:"generated_at"`

	GrossTransactionVolume  Amount `json:"gross_transaction_volume"`
	PlatformCommission      Amount `json:"platform_commission"`
	ProcessingFees          Amount `json:"processing_fees"`
	TotalRevenue            Amount `json:"total_revenue"`
	Refunds                 Amount `json:"refunds"`
	NetRevenue              Amount `json:"net_revenue"`
	AverageTransactionValue Amount `json:"average_transaction_value"`
	TakeRate                Amount `json:"take_rate"`
	RevenueGrowth           Amount `json:"revenue_growth"`

	PaidInvoiceCount int `json:"paid_invoice_count"`
	NewUsers         int `json:"new_users"`
	NewBrands        int `json:"new_brands"`
	NewInfluencers   int `json:"new_influencers"`
	NewCampaigns     int `json:"new_campaigns"`
	ActiveCampaigns  int `json:"active_campaigns"`
}

// Period returns the report period.
func (r *PlatformRevenueReport) Period() Period {
	return Period{Kind: r.ReportType, Start: r.PeriodStart, End: r.PeriodEnd}
}

// Key returns the cache identity.
func (r *PlatformRevenueReport) Key() PlatformReportKey {
	return PlatformReportKey{Period: r.Period()}
}

// Clone returns a detached copy.
func (r *PlatformRevenueReport) Clone() *PlatformRevenueReport {
	if r == nil {
		return nil
	}
	copy := *r
	return &copy
}
