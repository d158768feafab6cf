package database_test

import (
	"context"
	"testing"
	"time"

	"detergent/database"
	"detergent/dbtest"
	"detergent/loader"
	"detergent/model"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProcurement(t *testing.T, db *sqlx.DB) (model.Supplier, model.RawMaterial) {
	t.Helper()
	s := model.Supplier{Name: "Acme Chemicals", ContactPerson: "Mehta"}
	require.NoError(t, database.CreateSupplier(db, &s))
	m := model.RawMaterial{Name: "Caustic Soda", Unit: "kg"}
	require.NoError(t, database.CreateRawMaterial(db, &m))
	return s, m
}

func TestCreatePurchaseNumbersAndJoins(t *testing.T) {
	db := dbtest.Open(t)
	s, m := seedProcurement(t, db)

	in := model.PurchaseInput{SupplierID: s.ID, MaterialID: m.ID, Quantity: d("100"), UnitPrice: d("45.5"), AmountPaid: d("1000")}
	p, err := in.ToPurchase("2026-03-10")
	require.NoError(t, err)

	first, err := database.CreatePurchase(db, p)
	require.NoError(t, err)
	assert.Equal(t, "PO-000001", first.PONumber)
	assert.Equal(t, "Acme Chemicals", first.SupplierName)
	assert.Equal(t, "kg", first.MaterialUnit)
	assert.True(t, d("4550").Equal(first.TotalAmount))
	assert.True(t, d("3550").Equal(first.RemainingAmount))
	assert.Nil(t, first.DueDate)

	second, err := database.CreatePurchase(db, p)
	require.NoError(t, err)
	assert.Equal(t, "PO-000002", second.PONumber)

	list, err := database.GetPurchases(db, "caustic")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = database.GetPurchases(db, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreatePurchaseUnknownSupplier(t *testing.T) {
	db := dbtest.Open(t)
	_, m := seedProcurement(t, db)

	p := model.Purchase{SupplierID: "missing", MaterialID: m.ID, Quantity: d("1"), PurchaseDate: "2026-01-01"}
	_, err := database.CreatePurchase(db, p)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRecordPurchasePayment(t *testing.T) {
	db := dbtest.Open(t)
	s, m := seedProcurement(t, db)
	p, err := model.PurchaseInput{SupplierID: s.ID, MaterialID: m.ID, Quantity: d("10"), UnitPrice: d("10")}.ToPurchase("2026-03-10")
	require.NoError(t, err)
	stored, err := database.CreatePurchase(db, p)
	require.NoError(t, err)

	updated, err := database.RecordPurchasePayment(db, stored.ID, d("40"))
	require.NoError(t, err)
	assert.True(t, d("40").Equal(updated.AmountPaid))
	assert.True(t, d("60").Equal(updated.RemainingAmount))

	_, err = database.RecordPurchasePayment(db, stored.ID, d("61"))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = database.RecordPurchasePayment(db, "missing", d("1"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSequencesResumeFromStoredNumbers(t *testing.T) {
	db := dbtest.Open(t)
	s, m := seedProcurement(t, db)
	p, err := model.PurchaseInput{SupplierID: s.ID, MaterialID: m.ID, Quantity: d("1"), UnitPrice: d("1")}.ToPurchase("2026-03-10")
	require.NoError(t, err)
	_, err = database.CreatePurchase(db, p)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE code_sequences SET last_no = 0 WHERE name = 'PO'`)
	require.NoError(t, err)
	require.NoError(t, loader.InitDatabase(db))

	next, err := database.CreatePurchase(db, p)
	require.NoError(t, err)
	assert.Equal(t, "PO-000002", next.PONumber)
}

func TestNextSequenceInTx(t *testing.T) {
	for _, driver := range []string{database.DriverCgo, database.DriverPureGo} {
		t.Run(driver, func(t *testing.T) {
			db := dbtest.OpenWith(t, driver)
			tx, err := db.Beginx()
			require.NoError(t, err)
			defer tx.Rollback()

			first, err := database.NextSequenceInTx(tx, database.SequenceINV, "INV-", 6)
			require.NoError(t, err)
			second, err := database.NextSequenceInTx(tx, database.SequenceINV, "X", 3)
			require.NoError(t, err)
			assert.Equal(t, "INV-000001", first)
			assert.Equal(t, "X002", second)

			_, err = database.NextSequenceInTx(tx, "NOPE", "N-", 6)
			assert.ErrorIs(t, err, database.ErrNotFound)
		})
	}
}

func TestB2BSaleAndPayment(t *testing.T) {
	db := dbtest.Open(t)
	party := model.B2BParty{Name: "City Mart", CreditLimit: d("5000")}
	require.NoError(t, database.CreateParty(db, &party))
	product := model.Product{Name: "Lemon Wash 1L", UnitPrice: d("120")}
	require.NoError(t, database.CreateProduct(db, &product))

	sale, err := model.SaleInput{PartyID: party.ID, ProductID: product.ID, Quantity: d("10")}.ToB2BSale(product, "2026-03-10")
	require.NoError(t, err)
	stored, err := database.CreateB2BSale(db, sale)
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", stored.InvoiceNumber)
	assert.Equal(t, "City Mart", stored.PartyName)
	assert.Equal(t, model.StatusPending, stored.Status)

	updated, err := database.RecordB2BPayment(db, stored.ID, d("200"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPartial, updated.Status)

	updated, err = database.RecordB2BPayment(db, stored.ID, d("1000"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, updated.Status)
	assert.True(t, updated.RemainingAmount.IsZero())

	sales, err := database.GetB2BSales(db, "INV-0000")
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, model.StatusPaid, sales[0].Status)
}

func TestUpsertUserIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)

	u := model.User{Email: "owner@detergent.com", Name: "Owner", Role: model.RoleStaff, PasswordHash: "h1"}
	first, err := database.UpsertUser(db, u)
	require.NoError(t, err)

	u.Role, u.PasswordHash = model.RoleOwner, "h2"
	second, err := database.UpsertUser(db, u)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.RoleOwner, second.Role)
	assert.Equal(t, "h2", second.PasswordHash)

	err = database.CreateUser(db, &model.User{Email: u.Email, Role: model.RoleStaff, PasswordHash: "x"})
	assert.ErrorIs(t, err, database.ErrDuplicateEmail)
}

func TestSessionsCascadeWithUser(t *testing.T) {
	db := dbtest.Open(t)
	u := model.User{Email: "a@b.c", Role: model.RoleStaff, PasswordHash: "x"}
	require.NoError(t, database.CreateUser(db, &u))

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s, err := database.CreateSession(db, u.ID, now.Add(time.Hour))
	require.NoError(t, err)

	got, err := database.GetSession(db, s.Token)
	require.NoError(t, err)
	assert.False(t, got.Expired(now))
	assert.True(t, got.Expired(now.Add(2*time.Hour)))

	require.NoError(t, database.DeleteUserByEmail(db, u.Email))
	_, err = database.GetSession(db, s.Token)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := dbtest.Open(t)
	u := model.User{Email: "a@b.c", Role: model.RoleStaff, PasswordHash: "x"}
	require.NoError(t, database.CreateUser(db, &u))

	now := time.Now()
	_, err := database.CreateSession(db, u.ID, now.Add(-time.Minute))
	require.NoError(t, err)
	live, err := database.CreateSession(db, u.ID, now.Add(time.Hour))
	require.NoError(t, err)

	n, err := database.DeleteExpiredSessions(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = database.GetSession(db, live.Token)
	assert.NoError(t, err)
}

func TestLedgerSince(t *testing.T) {
	db := dbtest.Open(t)
	truck := model.Truck{TruckNumber: "KA01", Capacity: d("1000")}
	require.NoError(t, database.CreateTruck(db, &truck))
	for _, date := range []string{"2025-12-31", "2026-01-01", "2026-02-15"} {
		_, err := database.CreateTruckExpense(db, model.TruckExpense{
			TruckID: truck.ID, ExpenseDate: date, ExpenseType: model.ExpenseDiesel, Amount: d("100"),
		})
		require.NoError(t, err)
	}

	ctx := context.Background()
	all, err := database.LoadTruckLedger(ctx, db, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	since, err := database.LoadTruckLedger(ctx, db, "2026-01-01")
	require.NoError(t, err)
	require.Len(t, since, 2)
	for _, row := range since {
		assert.GreaterOrEqual(t, row.Date, "2026-01-01")
		assert.True(t, d("100").Equal(row.Amount))
	}
}

func TestWithdrawalsFilter(t *testing.T) {
	db := dbtest.Open(t)
	for _, w := range []model.PartnerWithdrawal{
		{PartnerName: "owner", Amount: d("500"), WithdrawalDate: "2026-01-05", Description: "school fees"},
		{PartnerName: "brother", Amount: d("300"), WithdrawalDate: "2026-03-01"},
	} {
		w := w
		require.NoError(t, database.CreateWithdrawal(db, &w))
	}

	list, err := database.GetWithdrawals(db, "2026-02-01", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "brother", list[0].PartnerName)

	list, err = database.GetWithdrawals(db, "", "school")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "owner", list[0].PartnerName)
}

func TestPureGoDriver(t *testing.T) {
	db := dbtest.OpenWith(t, database.DriverPureGo)

	m := model.Machine{Name: "Mixer", Type: "blender"}
	require.NoError(t, database.CreateMachine(db, &m))
	rec, err := database.CreateMaintenanceRecord(db, model.MaintenanceRecord{
		MachineID: m.ID, MaintenanceDate: "2026-03-01", Cost: d("2500.75"), MaintenanceType: model.MaintenanceRepair,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mixer", rec.MachineName)
	assert.True(t, d("2500.75").Equal(rec.Cost))

	ledger, err := database.LoadMaintenanceLedger(context.Background(), db, "")
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.True(t, d("2500.75").Equal(ledger[0].Amount))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("postgres", ":memory:")
	assert.Error(t, err)
}
