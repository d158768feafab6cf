package partners

import (
	"net/http"
	"time"

	"detergent/config"
	"detergent/database"
	"detergent/model"
	"detergent/period"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func WithdrawalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			p, err := period.Parse(q.Get("period"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			withdrawals, err := database.GetWithdrawals(db, p.Since(time.Now()), q.Get("q"))
			if err != nil {
				respond.Error(w, r, err)
				return
			}
			respond.JSON(w, http.StatusOK, withdrawals)
		case http.MethodPost:
			var pw model.PartnerWithdrawal
			if err := respond.Decode(r, &pw); err != nil {
				respond.Error(w, r, err)
				return
			}
			partners := config.GetConfig().Business.Partners
			if err := pw.Normalize(partners, period.Today(time.Now())); err != nil {
				respond.Error(w, r, err)
				return
			}
			if err := database.CreateWithdrawal(db, &pw); err != nil {
				respond.Error(w, r, err)
				return
			}
			zap.L().Info("partner withdrawal recorded",
				zap.String("partner", pw.PartnerName), zap.String("amount", pw.Amount.StringFixed(2)))
			respond.JSON(w, http.StatusCreated, pw)
		default:
			respond.MethodNotAllowed(w, http.MethodGet, http.MethodPost)
		}
	}
}

func SummaryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			respond.MethodNotAllowed(w, http.MethodGet)
			return
		}
		p, err := period.Parse(r.URL.Query().Get("period"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		now := time.Now()
		withdrawals, err := database.GetWithdrawals(db, p.Since(now), "")
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		partners := config.GetConfig().Business.Partners
		respond.JSON(w, http.StatusOK, Summary(partners, withdrawals, p, now))
	}
}
