package loader

import (
	"fmt"
	"io"
	"sort"

	"detergent/database"
	"detergent/model"
	"detergent/money"
	"detergent/parsers"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ImportResult reports how many rows were upserted and why the others were skipped.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped"`
}

// Kinds returns the importable master kinds in name order.
func Kinds() []string {
	kinds := make([]string, 0, len(parsers.MasterColumns))
	for k := range parsers.MasterColumns {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

type upsertFunc func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error

var upserters = map[string]upsertFunc{
	"suppliers": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		s := model.Supplier{Name: rec.Get("name"), ContactPerson: rec.Get("contact_person"), Phone: rec.Get("phone")}
		if err := s.Normalize(); err != nil {
			return err
		}
		return database.UpsertSupplierInTx(tx, s)
	},
	"raw-materials": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		m := model.RawMaterial{Name: rec.Get("name"), Unit: rec.Get("unit")}
		if err := m.Normalize(); err != nil {
			return err
		}
		return database.UpsertRawMaterialInTx(tx, m)
	},
	"products": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		price, err := money.Parse(rec.Get("unit_price"))
		if err != nil {
			return fmt.Errorf("%w: unit_price %q is not a number", model.ErrValidation, rec.Get("unit_price"))
		}
		p := model.Product{Name: rec.Get("name"), Type: rec.Get("type"), UnitPrice: price}
		if err := p.Normalize(); err != nil {
			return err
		}
		return database.UpsertProductInTx(tx, p)
	},
	"machines": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		m := model.Machine{Name: rec.Get("name"), Type: rec.Get("type")}
		if err := m.Normalize(); err != nil {
			return err
		}
		return database.UpsertMachineInTx(tx, m)
	},
	"trucks": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		capacity, err := money.Parse(rec.Get("capacity"))
		if err != nil {
			return fmt.Errorf("%w: capacity %q is not a number", model.ErrValidation, rec.Get("capacity"))
		}
		t := model.Truck{TruckNumber: rec.Get("truck_number"), Capacity: capacity, DriverName: rec.Get("driver_name")}
		if err := t.Normalize(); err != nil {
			return err
		}
		return database.UpsertTruckInTx(tx, t)
	},
	"parties": func(tx *sqlx.Tx, rec parsers.ParsedMasterRecord) error {
		limit, err := money.Parse(rec.Get("credit_limit"))
		if err != nil {
			return fmt.Errorf("%w: credit_limit %q is not a number", model.ErrValidation, rec.Get("credit_limit"))
		}
		p := model.B2BParty{
			Name:          rec.Get("name"),
			ContactPerson: rec.Get("contact_person"),
			Phone:         rec.Get("phone"),
			Address:       rec.Get("address"),
			CreditLimit:   limit,
		}
		if err := p.Normalize(); err != nil {
			return err
		}
		return database.UpsertPartyInTx(tx, p)
	},
}

// ImportMasters parses a master CSV of the given kind and upserts every valid row in one
// transaction. Invalid rows are skipped and listed in the result.
func ImportMasters(db *sqlx.DB, kind string, r io.Reader) (result ImportResult, err error) {
	upsert, ok := upserters[kind]
	if !ok {
		return result, fmt.Errorf("%w: unknown master kind %q", model.ErrValidation, kind)
	}

	records, skipped, err := parsers.ParseMasterCSV(kind, r)
	if err != nil {
		return result, fmt.Errorf("%w: %v", model.ErrValidation, err)
	}
	result.Skipped = append([]string{}, skipped...)

	tx, err := db.Beginx()
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			zap.L().Warn("rolling back master import", zap.String("kind", kind), zap.Error(err))
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	for _, rec := range records {
		if upsertErr := upsert(tx, rec); upsertErr != nil {
			zap.L().Warn("skipping master row", zap.String("kind", kind), zap.Int("line", rec.Line), zap.Error(upsertErr))
			result.Skipped = append(result.Skipped, fmt.Sprintf("line %d: %v", rec.Line, upsertErr))
			continue
		}
		result.Imported++
	}

	zap.L().Info("master import finished",
		zap.String("kind", kind), zap.Int("imported", result.Imported), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}
