package b2csales

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
	now := time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC)
	products := []model.Product{{ID: "a", Name: "Powder"}, {ID: "b", Name: "Liquid"}}
	sales := []model.B2CSale{
		{ProductID: "a", Quantity: d("2"), TotalAmount: d("240"), SaleDate: "2026-03-20"},
		{ProductID: "a", Quantity: d("1"), TotalAmount: d("120"), SaleDate: "2026-03-02"},
		{ProductID: "b", Quantity: d("5"), TotalAmount: d("500"), SaleDate: "2026-01-15"},
	}

	got := Overview(products, sales, now)
	assert.True(t, d("860").Equal(got.TotalRevenue))
	assert.True(t, d("240").Equal(got.TodaysSales))
	assert.True(t, d("360").Equal(got.ThisMonthSales))
	assert.True(t, d("8").Equal(got.TotalQuantitySold))
	require.Len(t, got.Products, 2)
	assert.Equal(t, 2, got.Products[0].SalesCount)
	assert.True(t, d("3").Equal(got.Products[0].TotalSold))

	none := Overview(products, nil, now)
	require.Len(t, none.Products, 2, "every product is listed")
	assert.Equal(t, 0, none.Products[1].SalesCount)
}

func TestSalesHandlersWalkIn(t *testing.T) {
	db := dbtest.Open(t)
	post := func(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		return rec
	}

	rec := post(ProductsHandler(db), `{"name":"Powder 1kg","type":"powder","unitPrice":"99.5"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p model.Product
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))

	rec = post(SalesHandler(db), `{"productId":"`+p.ID+`","quantity":"2"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var s model.B2CSale
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, model.WalkInCustomer, s.CustomerName)
	assert.True(t, d("199").Equal(s.TotalAmount))

	rec = post(SalesHandler(db), `{"productId":"`+p.ID+`","quantity":"1","unitPrice":"90","customerName":"Lakshmi"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = post(SalesHandler(db), `{"productId":"`+p.ID+`","quantity":"0"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	SalesHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/api/b2c/sales?q=laks", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.B2CSale
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Lakshmi", list[0].CustomerName)
	assert.True(t, d("90").Equal(list[0].UnitPrice))

	rec = httptest.NewRecorder()
	SalesHandler(db)(rec, httptest.NewRequest(http.MethodGet, "/api/b2c/sales?q=walk", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1, "blank customers match the walk-in label")
	assert.Equal(t, model.WalkInCustomer, list[0].CustomerName)
	assert.True(t, d("199").Equal(list[0].TotalAmount))
}
