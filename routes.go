package main

import (
	"net/http"

	"detergent/auth"
	"detergent/b2bsales"
	"detergent/b2csales"
	"detergent/buildinfo"
	"detergent/finances"
	"detergent/fleet"
	"detergent/loader"
	"detergent/machinery"
	"detergent/model"
	"detergent/partners"
	"detergent/procurement"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, svc *auth.Service) {
	// Public auth endpoints.
	mux.HandleFunc("/api/auth/signup", auth.SignUpHandler(svc))
	mux.HandleFunc("/api/auth/login", auth.LoginHandler(svc))
	mux.HandleFunc("/api/auth/logout", auth.LogoutHandler(svc))
	mux.HandleFunc("/api/auth/demo", auth.DemoLoginHandler(svc))
	mux.HandleFunc("/api/auth/demo/reset", auth.DemoResetHandler(svc))
	mux.HandleFunc("/api/auth/status", auth.StatusHandler(svc))
	mux.HandleFunc("/api/version", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{
			"version": buildinfo.Version,
			"commit":  buildinfo.Commit,
			"date":    buildinfo.Date,
		})
	})

	private := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth.RequireAuth(svc, h))
	}
	ownerOnly := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, auth.RequireAuth(svc, auth.RequireRole(model.RoleOwner, h)))
	}

	private("/api/auth/me", auth.MeHandler())

	private("/api/suppliers", procurement.SuppliersHandler(dbConn))
	private("/api/raw-materials", procurement.RawMaterialsHandler(dbConn))
	private("/api/purchases", procurement.PurchasesHandler(dbConn))
	private("/api/purchases/payments/", procurement.PurchasePaymentHandler(dbConn))
	private("/api/procurement/overview", procurement.OverviewHandler(dbConn))

	private("/api/machines", machinery.MachinesHandler(dbConn))
	private("/api/maintenance", machinery.MaintenanceHandler(dbConn))
	private("/api/machinery/overview", machinery.OverviewHandler(dbConn))

	private("/api/trucks", fleet.TrucksHandler(dbConn))
	private("/api/truck-expenses", fleet.ExpensesHandler(dbConn))
	private("/api/fleet/overview", fleet.OverviewHandler(dbConn))

	private("/api/b2b/parties", b2bsales.PartiesHandler(dbConn))
	private("/api/b2b/sales", b2bsales.SalesHandler(dbConn))
	private("/api/b2b/sales/payments/", b2bsales.PaymentHandler(dbConn))
	private("/api/b2b/overview", b2bsales.OverviewHandler(dbConn))

	private("/api/products", b2csales.ProductsHandler(dbConn))
	private("/api/b2c/sales", b2csales.SalesHandler(dbConn))
	private("/api/b2c/overview", b2csales.OverviewHandler(dbConn))

	private("/api/partners/withdrawals", partners.WithdrawalsHandler(dbConn))
	private("/api/partners/summary", partners.SummaryHandler(dbConn))

	private("/api/dashboard", finances.DashboardHandler(dbConn))
	private("/api/finances", finances.ReportHandler(dbConn))
	private("/api/finances/export_csv", finances.ExportCSVHandler(dbConn))
	private("/api/finances/report", finances.ReportHTMLHandler(dbConn))
	private("/api/finances/report.pdf", finances.ReportPDFHandler(dbConn))

	ownerOnly("/api/masters/import", loader.ImportMastersHandler(dbConn))

	// Anyone signed in may read the settings; only the owner may change them.
	private("/api/config", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			ConfigHandler()(w, r)
			return
		}
		auth.RequireRole(model.RoleOwner, ConfigHandler()).ServeHTTP(w, r)
	})

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		respond.Message(w, http.StatusNotFound, "no such endpoint")
	})
}
