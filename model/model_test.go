package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

const today = "2026-10-19"

func TestToPurchase(t *testing.T) {
	due := " 2026-11-01 "
	p, err := PurchaseInput{
		SupplierID: " s1 ", MaterialID: "m1",
		Quantity: d("12.5"), UnitPrice: d("40"), AmountPaid: d("100"),
		DueDate: &due,
	}.ToPurchase(today)
	require.NoError(t, err)
	assert.Equal(t, "s1", p.SupplierID)
	assert.True(t, d("500").Equal(p.TotalAmount))
	assert.True(t, d("400").Equal(p.RemainingAmount))
	assert.Equal(t, today, p.PurchaseDate)
	require.NotNil(t, p.DueDate)
	assert.Equal(t, "2026-11-01", *p.DueDate)

	blank := ""
	p, err = PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), DueDate: &blank}.ToPurchase(today)
	require.NoError(t, err)
	assert.Nil(t, p.DueDate, "blank due date is stored as null")
}

func TestToPurchaseRejects(t *testing.T) {
	bad := "19/10/2026"
	tests := []struct {
		name string
		in   PurchaseInput
	}{
		{"missing supplier", PurchaseInput{MaterialID: "m1", Quantity: d("1")}},
		{"missing material", PurchaseInput{SupplierID: "s1", Quantity: d("1")}},
		{"zero quantity", PurchaseInput{SupplierID: "s1", MaterialID: "m1"}},
		{"negative price", PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), UnitPrice: d("-1")}},
		{"overpaid", PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), UnitPrice: d("10"), AmountPaid: d("11")}},
		{"negative paid", PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), AmountPaid: d("-1")}},
		{"bad due date", PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), DueDate: &bad}},
		{"bad purchase date", PurchaseInput{SupplierID: "s1", MaterialID: "m1", Quantity: d("1"), PurchaseDate: "yesterday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.in.ToPurchase(today)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestApplyPayment(t *testing.T) {
	paid, remaining, err := ApplyPayment(d("100"), d("400"), d("150"))
	require.NoError(t, err)
	assert.True(t, d("250").Equal(paid))
	assert.True(t, d("250").Equal(remaining))

	_, _, err = ApplyPayment(d("100"), d("400"), d("400.01"))
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = ApplyPayment(d("100"), d("400"), decimal.Zero)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPaymentStatus(t *testing.T) {
	assert.Equal(t, StatusPaid, PaymentStatus(d("10"), decimal.Zero))
	assert.Equal(t, StatusPartial, PaymentStatus(d("10"), d("5")))
	assert.Equal(t, StatusPending, PaymentStatus(decimal.Zero, d("5")))
}

func TestToB2BSale(t *testing.T) {
	product := Product{ID: "p1", Name: "Liquid 5L", UnitPrice: d("250")}

	s, err := SaleInput{PartyID: "party", Quantity: d("4"), AmountPaid: d("400")}.ToB2BSale(product, today)
	require.NoError(t, err)
	assert.True(t, d("250").Equal(s.UnitPrice), "list price is the default")
	assert.True(t, d("1000").Equal(s.TotalAmount))
	assert.True(t, d("600").Equal(s.RemainingAmount))
	assert.Equal(t, StatusPartial, s.Status)
	assert.Equal(t, "Liquid 5L", s.ProductName)

	override := d("200")
	s, err = SaleInput{PartyID: "party", Quantity: d("2"), UnitPrice: &override, AmountPaid: d("400")}.ToB2BSale(product, today)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s.Status)

	_, err = SaleInput{Quantity: d("1")}.ToB2BSale(product, today)
	assert.ErrorIs(t, err, ErrValidation, "party is required")
	_, err = SaleInput{PartyID: "party", Quantity: d("1"), AmountPaid: d("251")}.ToB2BSale(product, today)
	assert.ErrorIs(t, err, ErrValidation, "overpayment is rejected")
}

func TestToB2CSale(t *testing.T) {
	product := Product{ID: "p1", Name: "Powder 1kg", UnitPrice: d("99.5")}
	s, err := SaleInput{Quantity: d("2"), CustomerName: "  "}.ToB2CSale(product, today)
	require.NoError(t, err)
	assert.True(t, d("199").Equal(s.TotalAmount))
	assert.Equal(t, WalkInCustomer, s.DisplayCustomer())

	_, err = SaleInput{Quantity: d("-1")}.ToB2CSale(product, today)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWithdrawalNormalize(t *testing.T) {
	partners := []string{"owner", "brother"}

	w := PartnerWithdrawal{PartnerName: " Brother ", Amount: d("500")}
	require.NoError(t, w.Normalize(partners, today))
	assert.Equal(t, "brother", w.PartnerName)
	assert.Equal(t, today, w.WithdrawalDate)

	w = PartnerWithdrawal{Amount: d("1")}
	require.NoError(t, w.Normalize(partners, today))
	assert.Equal(t, "owner", w.PartnerName, "empty partner defaults to the first")

	mixed := []string{"Ravi", "Amit"}
	w = PartnerWithdrawal{PartnerName: "Ravi", Amount: d("1")}
	require.NoError(t, w.Normalize(mixed, today))
	assert.Equal(t, "Ravi", w.PartnerName)
	w = PartnerWithdrawal{PartnerName: "amit", Amount: d("1")}
	require.NoError(t, w.Normalize(mixed, today))
	assert.Equal(t, "Amit", w.PartnerName, "stored with the configured spelling")

	w = PartnerWithdrawal{PartnerName: "cousin", Amount: d("1")}
	assert.ErrorIs(t, w.Normalize(partners, today), ErrValidation)
	w = PartnerWithdrawal{PartnerName: "owner"}
	assert.ErrorIs(t, w.Normalize(partners, today), ErrValidation)
}

func TestMasterNormalize(t *testing.T) {
	truck := Truck{TruckNumber: " ka-01-ab-1234 ", DriverName: " Suresh "}
	require.NoError(t, truck.Normalize())
	assert.Equal(t, "KA-01-AB-1234", truck.TruckNumber)
	assert.Equal(t, "Suresh", truck.DriverName)

	rec := MaintenanceRecord{MachineID: "m1", Cost: d("10")}
	require.NoError(t, rec.Normalize(today))
	assert.Equal(t, MaintenanceRoutine, rec.MaintenanceType)
	rec.MaintenanceType = "overhaul"
	assert.ErrorIs(t, rec.Normalize(today), ErrValidation)

	exp := TruckExpense{TruckID: "t1", Amount: d("10")}
	require.NoError(t, exp.Normalize(today))
	assert.Equal(t, ExpenseDiesel, exp.ExpenseType)

	assert.ErrorIs(t, (&Machine{Name: " "}).Normalize(), ErrValidation)
	assert.ErrorIs(t, (&Product{Name: "x", UnitPrice: d("-1")}).Normalize(), ErrValidation)
	assert.ErrorIs(t, (&B2BParty{Name: "x", CreditLimit: d("-1")}).Normalize(), ErrValidation)
}

func TestSessionExpired(t *testing.T) {
	now := time.Unix(1000, 0)
	assert.True(t, Session{ExpiresAt: 1000}.Expired(now))
	assert.False(t, Session{ExpiresAt: 1001}.Expired(now))
	assert.True(t, ValidRole(RoleStaff))
	assert.False(t, ValidRole("admin"))
}
