package b2bsales

import (
	"fmt"
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

func PartiesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			parties, err := database.GetAllParties(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, parties)
		case http.MethodPost:
			var p model.B2BParty
			if err := respond.Decode(r, &p); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := p.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateParty(db, &p); err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusCreated, p)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func SalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sales, err := database.GetB2BSales(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, sales)
		case http.MethodPost:
			var in model.SaleInput
			if err := respond.Decode(r, &in); err != nil {
				respond.Error(w, r, err)
				return
			}
			if strings.TrimSpace(in.ProductID) == "" {
				respond.Error(w, r, fmt.Errorf("%w: productId is required", model.ErrValidation))
				return
			}
			product, err := database.GetProductByID(db, in.ProductID)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			sale, err := in.ToB2BSale(product, period.Today(time.Now()))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			stored, err := database.CreateB2BSale(db, sale)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			zap.L().Info("b2b sale recorded",
				zap.String("invoice", stored.InvoiceNumber), zap.String("party", stored.PartyName), zap.String("status", stored.Status))
			respond.JSON(w, http.StatusCreated, stored)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

// PaymentHandler records a customer payment for /api/b2b/sales/payments/{id}.
func PaymentHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		id := strings.TrimPrefix(r.URL.Path, "/api/b2b/sales/payments/")
		if id == "" || strings.Contains(id, "/") {
			http.NotFound(w, r)
			return
		}
		var in paymentInput
		if err := respond.Decode(r, &in); err != nil {
			respond.Error(w, r, err)
			return
		}
		sale, err := database.RecordB2BPayment(db, id, in.Amount)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, sale)
	}
}

func OverviewHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		parties, err := database.GetAllParties(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		sales, err := database.GetB2BSales(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Overview(parties, sales, time.Now()))
	}
}
