package procurement

import (
	"net/http"
	"strings"
	"time"

	"detergent/database"
	"detergent/model"
	"detergent/period"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paymentInput struct {
	Amount decimal.Decimal `json:"amount"`
}

func SuppliersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			suppliers, err := database.GetAllSuppliers(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, suppliers)
		case http.MethodPost:
			var s model.Supplier
			if err := respond.Decode(r, &s); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := s.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateSupplier(db, &s); err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusCreated, s)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func RawMaterialsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			materials, err := database.GetAllRawMaterials(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, materials)
		case http.MethodPost:
			var m model.RawMaterial
			if err := respond.Decode(r, &m); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := m.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateRawMaterial(db, &m); err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusCreated, m)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func PurchasesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			purchases, err := database.GetPurchases(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, purchases)
		case http.MethodPost:
			var in model.PurchaseInput
			if err := respond.Decode(r, &in); err != nil {
				respond.Error(w, r, err)
				return
			}
			p, err := in.ToPurchase(period.Today(time.Now()))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			stored, err := database.CreatePurchase(db, p)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			zap.L().Info("purchase recorded",
				zap.String("po", stored.PONumber), zap.String("total", stored.TotalAmount.StringFixed(2)))
			respond.JSON(w, http.StatusCreated, stored)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

// PurchasePaymentHandler records a supplier payment for /api/purchases/payments/{id}.
func PurchasePaymentHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/purchases/payments/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		var in paymentInput
		if err := respond.Decode(r, &in); err != nil {
			respond.Error(w, r, err)
			return
		}
		p, err := database.RecordPurchasePayment(db, id, in.Amount)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, p)
	}
}

func OverviewHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		purchases, err := database.GetPurchases(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Overview(purchases, time.Now()))
	}
}
