package pricing

import "github.com/shopspring/decimal"

// estimateEffortHours computes total person-hours of labor.
// Stairs effort accrues per endpoint without an elevator; an elevator zeroes
// that endpoint's contribution regardless of floor. Disassembly and packing
// add volume-proportional effort. The configured minimum is a hard floor on
// the total, not per leg.
func estimateEffortHours(cfg RateConfig, volume decimal.Decimal, origin, destination Endpoint, hasDisassembly, hasPacking bool) decimal.Decimal {
	hours := volume.Mul(cfg.BaseEffortPerM3)

	stairs := decimal.Zero
	if !origin.HasElevator && origin.Floor > 0 {
		stairs = stairs.Add(decimal.NewFromInt(int64(origin.Floor)).Mul(volume).Mul(cfg.StairsEffortPerM3PerFloor))
	}
	if !destination.HasElevator && destination.Floor > 0 {
		stairs = stairs.Add(decimal.NewFromInt(int64(destination.Floor)).Mul(volume).Mul(cfg.StairsEffortPerM3PerFloor))
	}
	hours = hours.Add(stairs)

	if hasDisassembly {
		hours = hours.Add(volume.Mul(cfg.DisassemblyEffortFactor))
	}
	if hasPacking {
		hours = hours.Add(volume.Mul(cfg.PackingEffortFactor))
	}

	return decimal.Max(hours, cfg.MinimumEffortHours)
}

// crewSize derives the crew from volume thresholds alone, then raises it to
// the configured minimum. Never below one mover.
func crewSize(cfg RateConfig, volume decimal.Decimal) int {
	crew := 2
	switch {
	case volume.GreaterThanOrEqual(decimal.NewFromInt(45)):
		crew = 4
	case volume.GreaterThanOrEqual(decimal.NewFromInt(20)):
		crew = 3
	}
	if crew < cfg.MinMovers {
		crew = cfg.MinMovers
	}
	if crew < 1 {
		crew = 1
	}
	return crew
}

// truckTravelHours adjusts the raw car travel time for truck speed and adds a
// mandatory break above the threshold. Applied once per quote: one truck.
func truckTravelHours(cfg RateConfig, rawTravelHours decimal.Decimal) decimal.Decimal {
	truck := rawTravelHours.Mul(cfg.TruckSpeedFactor)
	if truck.GreaterThan(cfg.BreakThresholdHours) {
		truck = truck.Add(cfg.BreakHours)
	}
	return truck
}

// clockDuration converts person-hours into wall-clock time: labor shrinks
// with crew size, travel does not.
func clockDuration(effortHours decimal.Decimal, crew int, truckHours decimal.Decimal) decimal.Decimal {
	return effortHours.Div(decimal.NewFromInt(int64(crew))).Add(truckHours)
}
