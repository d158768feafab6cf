package model

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type PartnerWithdrawal struct {
	ID             string          `db:"id" json:"id"`
	PartnerName    string          `db:"partner_name" json:"partnerName"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	WithdrawalDate string          `db:"withdrawal_date" json:"withdrawalDate"`
	Description    string          `db:"description" json:"description"`
}

// Normalize validates w against the configured partner names, ignoring case,
// and stores the name as configured. An empty partner defaults to the first one.
func (w *PartnerWithdrawal) Normalize(partners []string, today string) error {
	name := strings.TrimSpace(w.PartnerName)
	if name == "" && len(partners) > 0 {
		name = partners[0]
	}
	i := slices.IndexFunc(partners, func(p string) bool { return strings.EqualFold(p, name) })
	if i < 0 {
		return invalid("unknown partner %q", name)
	}
	w.PartnerName = partners[i]
	if !w.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	var err error
	w.WithdrawalDate, err = normalizeDate("withdrawalDate", w.WithdrawalDate, today)
	return err
}

type PartnerSummary struct {
	PartnerName          string          `json:"partnerName"`
	TotalWithdrawals     decimal.Decimal `json:"totalWithdrawals"`
	WithdrawalCount      int             `json:"withdrawalCount"`
	LastWithdrawal       string          `json:"lastWithdrawal"`
	ThisMonthWithdrawals decimal.Decimal `json:"thisMonthWithdrawals"`
	// Share is this partner's percentage of all withdrawals in the period.
	Share decimal.Decimal `json:"share"`
}

type PartnersOverview struct {
	Period         string           `json:"period"`
	Partners       []PartnerSummary `json:"partners"`
	Total          decimal.Decimal  `json:"total"`
	ThisMonthTotal decimal.Decimal  `json:"thisMonthTotal"`
}
