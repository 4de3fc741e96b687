package pricing

import "github.com/shopspring/decimal"

// floorSurcharge accumulates extra floors beyond the free allowance across
// both endpoints (elevator endpoints contribute zero) and applies a
// percentage per extra floor to the caller-supplied reference cost bounds.
func floorSurcharge(cfg RateConfig, baseMin, baseMax decimal.Decimal, origin, destination Endpoint) (decimal.Decimal, decimal.Decimal) {
	extraFloors := 0
	if !origin.HasElevator && origin.Floor > cfg.FreeFloors {
		extraFloors += origin.Floor - cfg.FreeFloors
	}
	if !destination.HasElevator && destination.Floor > cfg.FreeFloors {
		extraFloors += destination.Floor - cfg.FreeFloors
	}
	if extraFloors == 0 {
		return decimal.Zero, decimal.Zero
	}
	factor := cfg.FloorSurchargePercent.Mul(decimal.NewFromInt(int64(extraFloors)))
	return baseMin.Mul(factor), baseMax.Mul(factor)
}
