package memory

import (
	"context"
	"sync"
	"time"

	reporting "creator-finance/internal/reporting/domain"
)

// Transaction types recorded in the financial transactions ledger.
const (
	TxnPayment            = "payment"
	TxnPlatformCommission = "platform_commission"
	TxnProcessingFee      = "processing_fee"
	TxnRefund             = "refund"
	TxnPayout             = "payout"
	TxnExpense            = "expense"

	StatusCompleted = "completed"
	StatusPending   = "pending"

	CampaignActive = "active"
)

// User is a platform account.
type User struct {
	ID        string
	Role      reporting.SubjectKind
	CreatedAt time.Time
}

// Invoice is an influencer invoice addressed to a brand.
type Invoice struct {
	ID           string
	InfluencerID string
	BrandID      string
	CampaignID   string
	Amount       reporting.Amount
	Status       string
	IssueDate    time.Time
	PaidAt       time.Time
}

func (i Invoice) paidDate() time.Time {
	if !i.PaidAt.IsZero() {
		return i.PaidAt
	}
	return i.IssueDate
}

// CampaignPayment is a brand payment toward a campaign. CampaignID may be empty.
type CampaignPayment struct {
	ID         string
	CampaignID string
	BrandID    string
	Amount     reporting.Amount
	Status     string
	PaidAt     time.Time
}

// Transaction is a financial transaction row. UserID is empty for platform-level rows.
type Transaction struct {
	ID         string
	UserID     string
	CampaignID string
	Type       string
	Amount     reporting.Amount
	Status     string
	CreatedAt  time.Time
}

// CampaignRecord is a campaign with its creation time.
type CampaignRecord struct {
	reporting.Campaign
	CreatedAt time.Time
}

// Ledger is an in-memory ledger implementing the reporting readers and directories.
type Ledger struct {
	mu           sync.RWMutex
	users        map[string]User
	campaigns    map[string]CampaignRecord
	invoices     []Invoice
	payments     []CampaignPayment
	transactions []Transaction
}

// NewLedger constructs an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		users:     make(map[string]User),
		campaigns: make(map[string]CampaignRecord),
	}
}

func (l *Ledger) AddUser(user User) {
	l.mu.Lock()
	l.users[user.ID] = user
	l.mu.Unlock()
}

func (l *Ledger) AddCampaign(campaign CampaignRecord) {
	l.mu.Lock()
	l.campaigns[campaign.ID] = campaign
	l.mu.Unlock()
}

func (l *Ledger) AddInvoice(invoice Invoice) {
	l.mu.Lock()
	l.invoices = append(l.invoices, invoice)
	l.mu.Unlock()
}

func (l *Ledger) AddPayment(payment CampaignPayment) {
	l.mu.Lock()
	l.payments = append(l.payments, payment)
	l.mu.Unlock()
}

func (l *Ledger) AddTransaction(txn Transaction) {
	l.mu.Lock()
	l.transactions = append(l.transactions, txn)
	l.mu.Unlock()
}

// SubjectExists reports whether a user with the subject's role exists.
func (l *Ledger) SubjectExists(_ context.Context, subject reporting.Subject) (bool, error) {
	if subject.IsPlatform() {
		return true, nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	user, ok := l.users[subject.ID]
	return ok && user.Role == subject.Kind, nil
}

// FindCampaign loads a campaign.
func (l *Ledger) FindCampaign(_ context.Context, campaignID string) (*reporting.Campaign, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.campaigns[campaignID]
	if !ok {
		return nil, nil
	}
	campaign := record.Campaign
	return &campaign, nil
}

// StatementTotals maps the subject's role onto revenue, costs and open balances.
func (l *Ledger) StatementTotals(_ context.Context, subject reporting.Subject, period reporting.Period) (reporting.LedgerTotals, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var totals reporting.LedgerTotals
	campaigns := make(map[string]struct{})

	for _, inv := range l.invoices {
		asInfluencer := subject.IsPlatform() || inv.InfluencerID == subject.ID
		asBrand := subject.IsPlatform() || inv.BrandID == subject.ID
		if !asInfluencer && !asBrand {
			continue
		}
		if period.Contains(inv.IssueDate) {
			totals.InvoiceCount++
			if subject.Kind == reporting.SubjectInfluencer && inv.CampaignID != "" {
				campaigns[inv.CampaignID] = struct{}{}
			}
		}
		if subject.IsPlatform() {
			continue
		}
		switch inv.Status {
		case reporting.InvoiceStatusPaid:
			if !period.Contains(inv.paidDate()) {
				continue
			}
			if inv.InfluencerID == subject.ID {
				totals.Revenue = totals.Revenue.Add(inv.Amount)
			}
			if subject.Kind == reporting.SubjectBrand && inv.BrandID == subject.ID {
				totals.DirectCosts = totals.DirectCosts.Add(inv.Amount)
			}
		case reporting.InvoiceStatusSent:
			if !period.Contains(inv.IssueDate) {
				continue
			}
			if subject.Kind == reporting.SubjectInfluencer && inv.InfluencerID == subject.ID {
				totals.Receivables = totals.Receivables.Add(inv.Amount)
			}
			if subject.Kind == reporting.SubjectBrand && inv.BrandID == subject.ID {
				totals.Payables = totals.Payables.Add(inv.Amount)
			}
		}
	}

	for _, txn := range l.transactions {
		if txn.Status != StatusCompleted || !period.Contains(txn.CreatedAt) {
			continue
		}
		if subject.IsPlatform() {
			totals.TransactionCount++
			switch txn.Type {
			case TxnPlatformCommission, TxnProcessingFee:
				totals.Revenue = totals.Revenue.Add(txn.Amount)
			case TxnRefund:
				totals.DirectCosts = totals.DirectCosts.Add(txn.Amount)
			case TxnExpense:
				if txn.UserID == "" {
					totals.OperatingExpense = totals.OperatingExpense.Add(txn.Amount)
				}
			}
			continue
		}
		if txn.UserID != subject.ID {
			continue
		}
		totals.TransactionCount++
		switch txn.Type {
		case TxnPlatformCommission, TxnProcessingFee:
			totals.DirectCosts = totals.DirectCosts.Add(txn.Amount)
		case TxnExpense:
			totals.OperatingExpense = totals.OperatingExpense.Add(txn.Amount)
		}
	}

	if subject.Kind != reporting.SubjectInfluencer {
		for _, record := range l.campaigns {
			if subject.Kind == reporting.SubjectBrand && record.BrandID != subject.ID {
				continue
			}
			if overlaps(record.Campaign, period) {
				campaigns[record.ID] = struct{}{}
			}
		}
	}
	totals.CampaignCount = len(campaigns)
	return totals, nil
}

// CampaignTotals aggregates payments, commissions and payouts of a campaign inside window.
func (l *Ledger) CampaignTotals(_ context.Context, campaign reporting.Campaign, window reporting.Period, matchUnattributed bool) (reporting.CampaignTotals, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var totals reporting.CampaignTotals
	for _, p := range l.payments {
		if p.Status != StatusCompleted || !window.Contains(p.PaidAt) {
			continue
		}
		attributed := p.CampaignID == campaign.ID
		unattributed := matchUnattributed && p.CampaignID == "" && p.BrandID == campaign.BrandID
		if !attributed && !unattributed {
			continue
		}
		totals.BrandPayments = totals.BrandPayments.Add(p.Amount)
		totals.PaymentCount++
	}
	for _, txn := range l.transactions {
		if txn.Type != TxnPlatformCommission || txn.Status != StatusCompleted || txn.CampaignID != campaign.ID {
			continue
		}
		if window.Contains(txn.CreatedAt) {
			totals.PlatformCommission = totals.PlatformCommission.Add(txn.Amount)
		}
	}
	influencers := make(map[string]struct{})
	for _, inv := range l.invoices {
		if inv.CampaignID != campaign.ID || inv.Status != reporting.InvoiceStatusPaid || !window.Contains(inv.paidDate()) {
			continue
		}
		totals.InfluencerPayouts = totals.InfluencerPayouts.Add(inv.Amount)
		totals.InvoiceCount++
		influencers[inv.InfluencerID] = struct{}{}
	}
	totals.InfluencerCount = len(influencers)
	return totals, nil
}

// PlatformTotals aggregates platform revenue and growth counters for a period.
func (l *Ledger) PlatformTotals(_ context.Context, period reporting.Period) (reporting.PlatformTotals, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var totals reporting.PlatformTotals
	for _, inv := range l.invoices {
		if inv.Status == reporting.InvoiceStatusPaid && period.Contains(inv.paidDate()) {
			totals.GrossTransactionVolume = totals.GrossTransactionVolume.Add(inv.Amount)
			totals.PaidInvoiceCount++
		}
	}
	for _, txn := range l.transactions {
		if txn.Status != StatusCompleted || !period.Contains(txn.CreatedAt) {
			continue
		}
		switch txn.Type {
		case TxnPlatformCommission:
			totals.PlatformCommission = totals.PlatformCommission.Add(txn.Amount)
		case TxnProcessingFee:
			totals.ProcessingFees = totals.ProcessingFees.Add(txn.Amount)
		case TxnRefund:
			totals.Refunds = totals.Refunds.Add(txn.Amount)
		}
	}
	for _, user := range l.users {
		if !period.Contains(user.CreatedAt) {
			continue
		}
		totals.NewUsers++
		switch user.Role {
		case reporting.SubjectBrand:
			totals.NewBrands++
		case reporting.SubjectInfluencer:
			totals.NewInfluencers++
		}
	}
	for _, record := range l.campaigns {
		if period.Contains(record.CreatedAt) {
			totals.NewCampaigns++
		}
		if record.Status == CampaignActive && overlaps(record.Campaign, period) {
			totals.ActiveCampaigns++
		}
	}
	return totals, nil
}

// InfluencerInvoices lists paid invoices by payment date and open invoices by issue date.
func (l *Ledger) InfluencerInvoices(_ context.Context, influencerID string, period reporting.Period) ([]reporting.EarningInvoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []reporting.EarningInvoice
	for _, inv := range l.invoices {
		if inv.InfluencerID != influencerID {
			continue
		}
		switch inv.Status {
		case reporting.InvoiceStatusPaid:
			if !period.Contains(inv.paidDate()) {
				continue
			}
		case reporting.InvoiceStatusSent, reporting.InvoiceStatusDraft:
			if !period.Contains(inv.IssueDate) {
				continue
			}
		default:
			continue
		}
		earning := reporting.EarningInvoice{
			InvoiceID:  inv.ID,
			CampaignID: inv.CampaignID,
			Amount:     inv.Amount,
			Status:     inv.Status,
			IssueDate:  inv.IssueDate,
			PaidAt:     inv.PaidAt,
		}
		if record, ok := l.campaigns[inv.CampaignID]; ok {
			earning.CampaignTitle = record.Title
			earning.Category = record.Category
		}
		out = append(out, earning)
	}
	return out, nil
}

func overlaps(campaign reporting.Campaign, period reporting.Period) bool {
	if campaign.StartDate.IsZero() || campaign.StartDate.After(period.End) {
		return false
	}
	return campaign.EndDate.IsZero() || !campaign.EndDate.Before(period.Start)
}
