package machinery

import (
	"net/http"
	"time"

	"detergent/database"
	"detergent/model"
	"detergent/period"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
)

func MachinesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			machines, err := database.GetAllMachines(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, machines)
		case http.MethodPost:
			var m model.Machine
			if err := respond.Decode(r, &m); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := m.Normalize(); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateMachine(db, &m); err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusCreated, m)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func MaintenanceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			records, err := database.GetMaintenanceRecords(db, r.URL.Query().Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, records)
		case http.MethodPost:
			var rec model.MaintenanceRecord
			if err := respond.Decode(r, &rec); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := rec.Normalize(period.Today(time.Now())); err != nil {
				respond.Error(w, r, err)
				return
			}
			stored, err := database.CreateMaintenanceRecord(db, rec)
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
		machines, err := database.GetAllMachines(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		records, err := database.GetMaintenanceRecords(db, "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Overview(machines, records, time.Now()))
	}
}
