package fleet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"detergent/dbtest"
	"detergent/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOverview(t *testing.T) {
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	trucks := []model.Truck{{ID: "t1", TruckNumber: "KA01"}, {ID: "t2", TruckNumber: "KA02"}, {ID: "t3", TruckNumber: "KA03"}}
	expenses := []model.TruckExpense{
		{TruckID: "t1", ExpenseType: model.ExpenseDiesel, Amount: d("3000"), ExpenseDate: "2026-03-02"},
		{TruckID: "t1", ExpenseType: model.ExpenseSalary, Amount: d("15000"), ExpenseDate: "2026-02-28"},
		{TruckID: "t2", ExpenseType: model.ExpenseRepair, Amount: d("2200"), ExpenseDate: "2026-03-11"},
	}

	got := Overview(trucks, expenses, now)
	assert.True(t, d("20200").Equal(got.TotalExpenses))
	assert.True(t, d("5200").Equal(got.ThisMonthExpenses))
	assert.True(t, d("3000").Equal(got.DieselExpenses))
	assert.True(t, d("15000").Equal(got.SalaryExpenses))
	assert.True(t, d("2200").Equal(got.RepairExpenses))
	assert.Equal(t, 3, got.ActiveTrucks)
	require.Len(t, got.Trucks, 3)
	assert.Equal(t, 2, got.Trucks[0].ExpenseCount)
	assert.Equal(t, "2026-03-02", got.Trucks[0].LastExpense)
	assert.Equal(t, 0, got.Trucks[2].ExpenseCount)
}

func TestExpenseHandlers(t *testing.T) {
	db := dbtest.Open(t)
	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return rec
	}

	rec := post(TrucksHandler(db), `{"truckNumber":"ka 01 ab 1234","capacity":"5000","driverName":"Ravi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var truck model.Truck
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&truck))
	assert.Equal(t, "KA 01 AB 1234", truck.TruckNumber)

	rec = post(TrucksHandler(db), `{"truckNumber":"KA 01 AB 1234"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(ExpensesHandler(db), `{"truckId":"`+truck.ID+`","amount":"4500","expenseDate":"2026-03-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var e model.TruckExpense
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	assert.Equal(t, model.ExpenseDiesel, e.ExpenseType)
	assert.Equal(t, "KA 01 AB 1234", e.TruckNumber)

	rec = post(ExpensesHandler(db), `{"truckId":"`+truck.ID+`","amount":"0"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = post(ExpensesHandler(db), `{"truckId":"`+truck.ID+`","amount":"10","expenseDate":"02/03/2026"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	ExpensesHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/api/truck-expenses?q=ka%2001", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.TruckExpense
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 1)
}
