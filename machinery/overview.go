package machinery

import (
	"time"

	"detergent/model"
	"detergent/money"
	"detergent/period"

	"github.com/shopspring/decimal"
)

// Overview totals maintenance cost overall and this month, with a row per machine.
// Machines without records are listed with zero cost and an empty last date.
func Overview(machines []model.Machine, records []model.MaintenanceRecord, now time.Time) model.MachineryOverview {
	cost := func(r model.MaintenanceRecord) decimal.Decimal { return r.Cost }

	byMachine := make(map[string]*model.MachineStats, len(machines))
	stats := make([]model.MachineStats, len(machines))
	for i, m := range machines {
		stats[i] = model.MachineStats{Machine: m, TotalCost: decimal.Zero}
		byMachine[m.ID] = &stats[i]
	}
	for _, r := range records {
		s, ok := byMachine[r.MachineID]
		if !ok {
			continue
		}
		s.TotalCost = s.TotalCost.Add(r.Cost)
		s.RecordCount++
		if r.MaintenanceDate > s.LastMaintenance {
			s.LastMaintenance = r.MaintenanceDate
		}
	}

	return model.MachineryOverview{
		TotalCost:     money.Sum(records, cost),
		ThisMonthCost: money.SumIf(records, func(r model.MaintenanceRecord) bool { return period.InMonth(now, r.MaintenanceDate) }, cost),
		Machines:      stats,
	}
}
