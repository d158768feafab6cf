package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Document number sequences kept in code_sequences.
const (
	SequencePO  = "PO"
	SequenceINV = "INV"
)

const sequencePadding = 6

// NextSequenceInTx advances the named sequence and returns prefix plus the new number,
// zero padded to padding digits. An unknown sequence is ErrNotFound.
func NextSequenceInTx(tx *sqlx.Tx, name, prefix string, padding int) (string, error) {
	var n int
	err := tx.Get(&n, `UPDATE code_sequences SET last_no = last_no + 1 WHERE name = ? RETURNING last_no`, name)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("sequence %q: %w", name, ErrNotFound)
	case err != nil:
		return "", fmt.Errorf("failed to advance sequence %q: %w", name, err)
	}
	code := fmt.Sprintf("%s%0*d", prefix, padding, n)
	zap.L().Debug("sequence advanced", zap.String("sequence", name), zap.String("code", code))
	return code, nil
}

func nextPONumber(tx *sqlx.Tx) (string, error) {
	return NextSequenceInTx(tx, SequencePO, SequencePO+"-", sequencePadding)
}

func nextInvoiceNumber(tx *sqlx.Tx) (string, error) {
	return NextSequenceInTx(tx, SequenceINV, SequenceINV+"-", sequencePadding)
}

// InitializeSequenceFromMax sets a sequence's last_no to the highest number already stored in
// table.column, so numbering resumes after a restore or manual import.
func InitializeSequenceFromMax(tx *sqlx.Tx, name, table, column string) error {
	prefix := name + "-"
	var codes []string
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIKE ?", column, table, column)
	if err := tx.Select(&codes, q, prefix+"%"); err != nil {
		return fmt.Errorf("failed to read %s numbers: %w", name, err)
	}

	maxNum := 0
	for _, code := range codes {
		n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
		if err == nil && n > maxNum {
			maxNum = n
		}
	}

	zap.L().Info("sequence initialized", zap.String("sequence", name), zap.Int("last_no", maxNum))

	_, err := tx.Exec(`
		INSERT INTO code_sequences (name, last_no) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_no = excluded.last_no`, name, maxNum)
	if err != nil {
		return fmt.Errorf("failed to set sequence '%s': %w", name, err)
	}
	return nil
}

// InitializeSequences resumes the PO and invoice sequences from the stored documents.
func InitializeSequences(db *sqlx.DB) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := InitializeSequenceFromMax(tx, SequencePO, "raw_material_purchases", "po_number"); err != nil {
		return err
	}
	if err := InitializeSequenceFromMax(tx, SequenceINV, "b2b_sales", "invoice_number"); err != nil {
		return err
	}
	return tx.Commit()
}
