package pricing

import "github.com/shopspring/decimal"

// distanceCost computes tiered per-kilometer pricing with a symmetric spread.
func distanceCost(cfg RateConfig, distanceKm decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	var base decimal.Decimal
	if distanceKm.LessThanOrEqual(cfg.KmThreshold) {
		base = distanceKm.Mul(cfg.RatePerKmNear)
	} else {
		near := cfg.KmThreshold.Mul(cfg.RatePerKmNear)
		far := distanceKm.Sub(cfg.KmThreshold).Mul(cfg.RatePerKmFar)
		base = near.Add(far)
	}
	one := decimal.NewFromInt(1)
	return base.Mul(one.Sub(cfg.DistanceSpread)), base.Mul(one.Add(cfg.DistanceSpread))
}
