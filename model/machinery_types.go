package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Maintenance types.
const (
	MaintenanceRoutine = "routine"
	MaintenanceRepair  = "repair"
)

type Machine struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Type string `db:"type" json:"type"`
}

func (m *Machine) Normalize() error {
	name, err := required("name", m.Name)
	if err != nil {
		return err
	}
	m.Name = name
	m.Type = strings.TrimSpace(m.Type)
	return nil
}

type MaintenanceRecord struct {
	ID              string          `db:"id" json:"id"`
	MachineID       string          `db:"machine_id" json:"machineId"`
	MachineName     string          `db:"machine_name" json:"machineName"`
	MaintenanceDate string          `db:"maintenance_date" json:"maintenanceDate"`
	Cost            decimal.Decimal `db:"cost" json:"cost"`
	Description     string          `db:"description" json:"description"`
	MaintenanceType string          `db:"maintenance_type" json:"maintenanceType"`
}

func (r *MaintenanceRecord) Normalize(today string) error {
	var err error
	if r.MachineID, err = required("machineId", r.MachineID); err != nil {
		return err
	}
	if r.Cost.IsNegative() {
		return invalid("cost must not be negative")
	}
	switch r.MaintenanceType = strings.TrimSpace(r.MaintenanceType); r.MaintenanceType {
	case "":
		r.MaintenanceType = MaintenanceRoutine
	case MaintenanceRoutine, MaintenanceRepair:
	default:
		return invalid("maintenanceType must be %q or %q", MaintenanceRoutine, MaintenanceRepair)
	}
	r.MaintenanceDate, err = normalizeDate("maintenanceDate", r.MaintenanceDate, today)
	return err
}

// MachineStats is the per-machine row of the machinery overview.
type MachineStats struct {
	Machine
	TotalCost       decimal.Decimal `json:"totalCost"`
	RecordCount     int             `json:"recordCount"`
	LastMaintenance string          `json:"lastMaintenance"`
}

type MachineryOverview struct {
	TotalCost     decimal.Decimal `json:"totalCost"`
	ThisMonthCost decimal.Decimal `json:"thisMonthCost"`
	Machines      []MachineStats  `json:"machines"`
}
