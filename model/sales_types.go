package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// B2B payment status values.
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusPending = "pending"
)

// WalkInCustomer is shown for B2C sales recorded without a customer name.
const WalkInCustomer = "Walk-in Customer"

type Product struct {
	ID        string          `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Type      string          `db:"type" json:"type"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
}

func (p *Product) Normalize() error {
	name, err := required("name", p.Name)
	if err != nil {
		return err
	}
	if p.UnitPrice.IsNegative() {
		return invalid("unitPrice must not be negative")
	}
	p.Name = name
	p.Type = strings.TrimSpace(p.Type)
	return nil
}

type B2BParty struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	ContactPerson string          `db:"contact_person" json:"contactPerson"`
	Phone         string          `db:"phone" json:"phone"`
	Address       string          `db:"address" json:"address"`
	CreditLimit   decimal.Decimal `db:"credit_limit" json:"creditLimit"`
}

func (p *B2BParty) Normalize() error {
	name, err := required("name", p.Name)
	if err != nil {
		return err
	}
	if p.CreditLimit.IsNegative() {
		return invalid("creditLimit must not be negative")
	}
	p.Name = name
	return nil
}

type B2BSale struct {
	ID              string          `db:"id" json:"id"`
	InvoiceNumber   string          `db:"invoice_number" json:"invoiceNumber"`
	PartyID         string          `db:"party_id" json:"partyId"`
	PartyName       string          `db:"party_name" json:"partyName"`
	ProductID       string          `db:"product_id" json:"productId"`
	ProductName     string          `db:"product_name" json:"productName"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalAmount     decimal.Decimal `db:"total_amount" json:"totalAmount"`
	AmountPaid      decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	RemainingAmount decimal.Decimal `db:"remaining_amount" json:"remainingAmount"`
	SaleDate        string          `db:"sale_date" json:"saleDate"`
	DueDate         *string         `db:"due_date" json:"dueDate"`
	Status          string          `db:"status" json:"status"`
}

// SaleInput is the form body shared by B2B and B2C sales.
// UnitPrice is optional; the product's list price is used when it is nil.
type SaleInput struct {
	PartyID      string           `json:"partyId"`
	ProductID    string           `json:"productId"`
	Quantity     decimal.Decimal  `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unitPrice"`
	AmountPaid   decimal.Decimal  `json:"amountPaid"`
	SaleDate     string           `json:"saleDate"`
	DueDate      *string          `json:"dueDate"`
	CustomerName string           `json:"customerName"`
}

// PaymentStatus derives the B2B status from what has been paid.
func PaymentStatus(paid, remaining decimal.Decimal) string {
	switch {
	case remaining.IsZero():
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusPending
	}
}

func (in SaleInput) price(listPrice decimal.Decimal) (decimal.Decimal, error) {
	if !in.Quantity.IsPositive() {
		return decimal.Zero, invalid("quantity must be positive")
	}
	price := listPrice
	if in.UnitPrice != nil {
		price = *in.UnitPrice
	}
	if price.IsNegative() {
		return decimal.Zero, invalid("unitPrice must not be negative")
	}
	return price, nil
}

// ToB2BSale validates the input against the product list price and derives totals and status.
func (in SaleInput) ToB2BSale(product Product, today string) (B2BSale, error) {
	var s B2BSale
	var err error
	if s.PartyID, err = required("partyId", in.PartyID); err != nil {
		return s, err
	}
	price, err := in.price(product.UnitPrice)
	if err != nil {
		return s, err
	}
	if s.SaleDate, err = normalizeDate("saleDate", in.SaleDate, today); err != nil {
		return s, err
	}
	if s.DueDate, err = optionalDate("dueDate", in.DueDate); err != nil {
		return s, err
	}
	total := in.Quantity.Mul(price)
	if err := checkPaid(in.AmountPaid, total); err != nil {
		return s, err
	}
	s.ProductID = product.ID
	s.ProductName = product.Name
	s.Quantity = in.Quantity
	s.UnitPrice = price
	s.TotalAmount = total
	s.AmountPaid = in.AmountPaid
	s.RemainingAmount = total.Sub(in.AmountPaid)
	s.Status = PaymentStatus(s.AmountPaid, s.RemainingAmount)
	return s, nil
}

type B2CSale struct {
	ID           string          `db:"id" json:"id"`
	ProductID    string          `db:"product_id" json:"productId"`
	ProductName  string          `db:"product_name" json:"productName"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"totalAmount"`
	SaleDate     string          `db:"sale_date" json:"saleDate"`
	CustomerName string          `db:"customer_name" json:"customerName"`
}

func (in SaleInput) ToB2CSale(product Product, today string) (B2CSale, error) {
	var s B2CSale
	price, err := in.price(product.UnitPrice)
	if err != nil {
		return s, err
	}
	if s.SaleDate, err = normalizeDate("saleDate", in.SaleDate, today); err != nil {
		return s, err
	}
	s.ProductID = product.ID
	s.ProductName = product.Name
	s.Quantity = in.Quantity
	s.UnitPrice = price
	s.TotalAmount = in.Quantity.Mul(price)
	s.CustomerName = strings.TrimSpace(in.CustomerName)
	return s, nil
}

// DisplayCustomer returns the customer name, or WalkInCustomer when none was recorded.
func (s B2CSale) DisplayCustomer() string {
	if s.CustomerName == "" {
		return WalkInCustomer
	}
	return s.CustomerName
}

type PartyStats struct {
	B2BParty
	TotalSales     decimal.Decimal `json:"totalSales"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	SaleCount      int             `json:"saleCount"`
	CreditExceeded bool            `json:"creditExceeded"`
}

type B2BOverview struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	ThisMonthSales decimal.Decimal `json:"thisMonthSales"`
	Parties        []PartyStats    `json:"parties"`
}

type ProductSales struct {
	Product
	TotalSold  decimal.Decimal `json:"totalSold"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int             `json:"salesCount"`
}

type B2COverview struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TodaysSales       decimal.Decimal `json:"todaysSales"`
	ThisMonthSales    decimal.Decimal `json:"thisMonthSales"`
	TotalQuantitySold decimal.Decimal `json:"totalQuantitySold"`
	Products          []ProductSales  `json:"products"`
}
