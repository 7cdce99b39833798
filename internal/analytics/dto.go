package analytics

import (
	"github.com/shopspring/decimal"
)

// AdminDashboard aggregates the figures shown on the admin home.
type AdminDashboard struct {
	TotalResidents      int64           `json:"total_residents"`
	PendingBills        int64           `json:"pending_bills"`
	OverdueBills        int64           `json:"overdue_bills"`
	CollectedThisMonth  decimal.Decimal `json:"collected_this_month"`
	OpenComplaints      int64           `json:"open_complaints"`
	VisitorsToday       int64           `json:"visitors_today"`
	ActiveAnnouncements int64           `json:"active_announcements"`
}

// AccountantDashboard aggregates the money-side figures.
type AccountantDashboard struct {
	CollectedThisMonth decimal.Decimal `json:"collected_this_month"`
	OutstandingAmount  decimal.Decimal `json:"outstanding_amount"`
	IncomeThisMonth    decimal.Decimal `json:"income_this_month"`
	ExpenseThisMonth   decimal.Decimal `json:"expense_this_month"`
	CollectionRate     float64         `json:"collection_rate"`
}

// SuperAdminDashboard aggregates across every site.
type SuperAdminDashboard struct {
	TotalSites          int64           `json:"total_sites"`
	ActiveSites         int64           `json:"active_sites"`
	TotalUsers          int64           `json:"total_users"`
	SubscriptionRevenue decimal.Decimal `json:"subscription_revenue"`
}
