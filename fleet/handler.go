package fleet

import (
	"net/http"
	"time"

	"detergent/database"
	"detergent/model"
	"detergent/period"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
)

func TrucksHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			trucks, err := database.GetAllTrucks(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, trucks)
		case http.MethodPost:
			var t model.Truck
			if err := respond.Decode(r, &t); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := t.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateTruck(db, &t); err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusCreated, t)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func ExpensesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			expenses, err := database.GetTruckExpenses(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, expenses)
		case http.MethodPost:
			var e model.TruckExpense
			if err := respond.Decode(r, &e); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := e.Normalize(period.Today(time.Now())); err != nil {
				respond.Error(w, r, err)
				return
			}
			stored, err := database.CreateTruckExpense(db, e)
			if err != nil {
				respond.Error(w, r, err)
				return
			}
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
		trucks, err := database.GetAllTrucks(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		expenses, err := database.GetTruckExpenses(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Overview(trucks, expenses, time.Now()))
	}
}
