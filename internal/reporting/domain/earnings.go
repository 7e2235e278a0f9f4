package reporting

import (
	"sort"
	"time"
)

// Invoice statuses as recorded by the payment workflows.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

const topCategoryLimit = 5

// EarningInvoice is one influencer invoice with its campaign context.
type EarningInvoice struct {
	InvoiceID     string
	CampaignID    string
	CampaignTitle string
	Category      string
	Amount        Amount
	Status        string
	IssueDate     time.Time
	PaidAt        time.Time
}

// EffectiveDate is the date an invoice counts toward: the payment date when paid, else the issue date.
func (i EarningInvoice) EffectiveDate() time.Time {
	if i.Status == InvoiceStatusPaid && !i.PaidAt.IsZero() {
		return i.PaidAt
	}
	return i.IssueDate
}

// CampaignEarnings is the per-campaign share of an influencer's earnings.
type CampaignEarnings struct {
	CampaignID    string `json:"campaign_id"`
	CampaignTitle string `json:"campaign_title"`
	Category      string `json:"category"`
	Earnings      Amount `json:"earnings"`
	InvoiceCount  int    `json:"invoice_count"`
}

// MonthlyEarnings is one month bucket.
type MonthlyEarnings struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Label        string `json:"label"`
	Earnings     Amount `json:"earnings"`
	InvoiceCount int    `json:"invoice_count"`
}

// CategoryEarnings is one entry of the top categories ranking.
type CategoryEarnings struct {
	Category string `json:"category"`
	Earnings Amount `json:"earnings"`
	Share    Amount `json:"share"`
}

// PaymentStatusSplit splits invoice amounts by payment state.
type PaymentStatusSplit struct {
	Paid       Amount `json:"paid"`
	Pending    Amount `json:"pending"`
	Processing Amount `json:"processing"`
}

// EarningsSummary is the uncached earnings overview of one influencer.
type EarningsSummary struct {
	InfluencerID      string             `json:"influencer_id"`
	Year              int                `json:"year"`
	Month             int                `json:"month,omitempty"`
	PeriodStart       time.Time          `json:"period_start"`
	PeriodEnd         time.Time          `json:"period_end"`
	Currency          string             `json:"currency"`
	TotalEarnings     Amount             `json:"total_earnings"`
	InvoiceCount      int                `json:"invoice_count"`
	AverageInvoice    Amount             `json:"average_invoice"`
	CampaignBreakdown []CampaignEarnings `json:"campaign_breakdown"`
	MonthlyBreakdown  []MonthlyEarnings  `json:"monthly_breakdown"`
	TopCategories     []CategoryEarnings `json:"top_categories"`
	PaymentStatus     PaymentStatusSplit `json:"payment_status"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// Period returns the summary period.
func (s *EarningsSummary) Period() Period {
	kind := PeriodYearly
	if s.Month != 0 {
		kind = PeriodMonthly
	}
	return Period{Kind: kind, Start: s.PeriodStart, End: s.PeriodEnd}
}

// BuildEarningsSummary aggregates invoices of one influencer over period. Only paid invoices
// count as earnings; sent and draft invoices feed the pending and processing buckets.
func BuildEarningsSummary(influencerID string, year, month int, period Period, currency string, invoices []EarningInvoice, now time.Time) *EarningsSummary {
	months := period.Months()
	monthly := make([]MonthlyEarnings, len(months))
	for i, m := range months {
		monthly[i] = MonthlyEarnings{
			Year:     m.Start.Year(),
			Month:    int(m.Start.Month()),
			Label:    m.Start.Format("Jan 2006"),
			Earnings: Zero,
		}
	}

	campaigns := make(map[string]*CampaignEarnings)
	var campaignOrder []string
	categories := make(map[string]Amount)
	var split PaymentStatusSplit
	total := Zero
	paidCount := 0

	for _, inv := range invoices {
		switch inv.Status {
		case InvoiceStatusSent:
			split.Pending = split.Pending.Add(inv.Amount)
			continue
		case InvoiceStatusDraft:
			split.Processing = split.Processing.Add(inv.Amount)
			continue
		case InvoiceStatusPaid:
		default:
			continue
		}
		date := inv.EffectiveDate()
		if !period.Contains(date) {
			continue
		}
		split.Paid = split.Paid.Add(inv.Amount)
		total = total.Add(inv.Amount)
		paidCount++

		for i, m := range months {
			if m.Contains(date) {
				monthly[i].Earnings = monthly[i].Earnings.Add(inv.Amount)
				monthly[i].InvoiceCount++
				break
			}
		}

		key := inv.CampaignID
		entry, ok := campaigns[key]
		if !ok {
			entry = &CampaignEarnings{CampaignID: inv.CampaignID, CampaignTitle: inv.CampaignTitle, Category: inv.Category}
			campaigns[key] = entry
			campaignOrder = append(campaignOrder, key)
		}
		entry.Earnings = entry.Earnings.Add(inv.Amount)
		entry.InvoiceCount++

		category := inv.Category
		if category == "" {
			category = "uncategorized"
		}
		categories[category] = categories[category].Add(inv.Amount)
	}

	breakdown := make([]CampaignEarnings, 0, len(campaignOrder))
	for _, key := range campaignOrder {
		breakdown = append(breakdown, *campaigns[key])
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Earnings.GreaterThan(breakdown[j].Earnings)
	})

	top := make([]CategoryEarnings, 0, len(categories))
	for category, earnings := range categories {
		top = append(top, CategoryEarnings{Category: category, Earnings: earnings, Share: earnings.Percent(total)})
	}
	sort.Slice(top, func(i, j int) bool {
		if c := top[i].Earnings.Cmp(top[j].Earnings); c != 0 {
			return c > 0
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > topCategoryLimit {
		top = top[:topCategoryLimit]
	}

	return &EarningsSummary{
		InfluencerID:      influencerID,
		Year:              year,
		Month:             month,
		PeriodStart:       period.Start,
		PeriodEnd:         period.End,
		Currency:          currency,
		TotalEarnings:     total,
		InvoiceCount:      paidCount,
		AverageInvoice:    total.DivInt(paidCount),
		CampaignBreakdown: breakdown,
		MonthlyBreakdown:  monthly,
		TopCategories:     top,
		PaymentStatus:     split,
		GeneratedAt:       now,
	}
}
