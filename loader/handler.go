package loader

import (
	"fmt"
	"net/http"

	"detergent/model"
	"detergent/respond"

	"github.com/jmoiron/sqlx"
)

const maxImportSize = 10 << 20

// ImportMastersHandler accepts a multipart "file" upload for the master kind named by ?kind=.
func ImportMastersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			respond.MethodNotAllowed(w, http.MethodPost)
			return
		}
		kind := r.URL.Query().Get("kind")

		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			respond.Error(w, r, fmt.Errorf("%w: failed to read upload: %v", model.ErrValidation, err))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			respond.Error(w, r, fmt.Errorf("%w: failed to read CSV file: %v", model.ErrValidation, err))
			return
		}
		defer file.Close()

		result, err := ImportMasters(db, kind, file)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		message := fmt.Sprintf("Import complete. %s: %d rows", kind, result.Imported)
		if len(result.Skipped) > 0 {
			message += fmt.Sprintf(", %d skipped", len(result.Skipped))
		}
		respond.JSON(w, http.StatusOK, map[string]interface{}{
			"message":  message,
			"imported": result.Imported,
			"skipped":  result.Skipped,
		})
	}
}
