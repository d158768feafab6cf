package loader

import (
	"fmt"

	"detergent/database"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// InitDatabase applies the embedded schema and resumes the document number sequences.
func InitDatabase(db *sqlx.DB) error {
	zap.L().Info("applying database schema")
	if err := database.ApplySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	if err := database.InitializeSequences(db); err != nil {
		return fmt.Errorf("failed to initialize code sequences: %w", err)
	}
	zap.L().Info("code sequences initialized")
	return nil
}
