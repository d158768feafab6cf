package b2csales

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
)

func ProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			products, err := database.GetAllProducts(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, products)
		case http.MethodPost:
			var p model.Product
			if err := respond.Decode(r, &p); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := p.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateProduct(db, &p); err != nil {
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
			sales, err := database.GetB2CSales(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			for i := range sales {
				sales[i].CustomerName = sales[i].DisplayCustomer()
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
			sale, err := in.ToB2CSale(product, period.Today(time.Now()))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			stored, err := database.CreateB2CSale(db, sale)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			stored.CustomerName = stored.DisplayCustomer()
			respond.JSON(w, http.StatusCreated, stored)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func OverviewHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		products, err := database.GetAllProducts(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		sales, err := database.GetB2CSales(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Overview(products, sales, time.Now()))
	}
}
