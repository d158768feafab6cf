package model

import (
	"github.com/shopspring/decimal"
)

type Supplier struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	ContactPerson string `db:"contact_person" json:"contactPerson"`
	Phone         string `db:"phone" json:"phone"`
}

func (s *Supplier) Normalize() error {
	name, err := required("name", s.Name)
	if err != nil {
		return err
	}
	s.Name = name
	return nil
}

type RawMaterial struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Unit string `db:"unit" json:"unit"`
}

func (m *RawMaterial) Normalize() error {
	name, err := required("name", m.Name)
	if err != nil {
		return err
	}
	unit, err := required("unit", m.Unit)
	if err != nil {
		return err
	}
	m.Name, m.Unit = name, unit
	return nil
}

// Purchase is a raw_material_purchases row joined with supplier and material names.
type Purchase struct {
	ID              string          `db:"id" json:"id"`
	PONumber        string          `db:"po_number" json:"poNumber"`
	SupplierID      string          `db:"supplier_id" json:"supplierId"`
	SupplierName    string          `db:"supplier_name" json:"supplierName"`
	MaterialID      string          `db:"material_id" json:"materialId"`
	MaterialName    string          `db:"material_name" json:"materialName"`
	MaterialUnit    string          `db:"material_unit" json:"materialUnit"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"totalAmount"`
	AmountPaid      decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	RemainingAmount decimal.Decimal `db:"remaining_amount" json:"remainingAmount"`
	PurchaseDate    string          `db:"purchase_date" json:"purchaseDate"`
	DueDate         *string         `db:"due_date" json:"dueDate"`
	Notes           string          `db:"notes" json:"notes"`
}

// PurchaseInput is the form body for recording a purchase.
type PurchaseInput struct {
	SupplierID   string          `json:"supplierId"`
	MaterialID   string          `json:"materialId"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	PurchaseDate string          `json:"purchaseDate"`
	DueDate      *string         `json:"dueDate"`
	Notes        string          `json:"notes"`
}

// ToPurchase validates the input and derives the total and remaining amounts.
func (in PurchaseInput) ToPurchase(today string) (Purchase, error) {
	var p Purchase
	var err error
	if p.SupplierID, err = required("supplierId", in.SupplierID); err != nil {
		return p, err
	}
	if p.MaterialID, err = required("materialId", in.MaterialID); err != nil {
		return p, err
	}
	if !in.Quantity.IsPositive() {
		return p, invalid("quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return p, invalid("unitPrice must not be negative")
	}
	if p.PurchaseDate, err = normalizeDate("purchaseDate", in.PurchaseDate, today); err != nil {
		return p, err
	}
	if p.DueDate, err = optionalDate("dueDate", in.DueDate); err != nil {
		return p, err
	}

	total := in.Quantity.Mul(in.UnitPrice)
	if err := checkPaid(in.AmountPaid, total); err != nil {
		return p, err
	}
	p.Quantity = in.Quantity
	p.UnitPrice = in.UnitPrice
	p.TotalAmount = total
	p.AmountPaid = in.AmountPaid
	p.RemainingAmount = total.Sub(in.AmountPaid)
	p.Notes = in.Notes
	return p, nil
}

func checkPaid(paid, total decimal.Decimal) error {
	if paid.IsNegative() {
		return invalid("amountPaid must not be negative")
	}
	if paid.GreaterThan(total) {
		return invalid("amountPaid %s exceeds total %s", paid.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// ApplyPayment checks amount against what is still owed and returns the new paid/remaining pair.
func ApplyPayment(paid, remaining, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return paid, remaining, invalid("payment amount must be positive")
	}
	if amount.GreaterThan(remaining) {
		return paid, remaining, invalid("payment %s exceeds remaining %s", amount.StringFixed(2), remaining.StringFixed(2))
	}
	return paid.Add(amount), remaining.Sub(amount), nil
}

type ProcurementOverview struct {
	TotalSpend     decimal.Decimal `json:"totalSpend"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	ThisMonthSpend decimal.Decimal `json:"thisMonthSpend"`
}
