package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Multipliers records every calendar/regional adjustment applied to a quote.
// WeekendHolidayPercent is a percent (0.10 = +10%), not a multiplier.
type Multipliers struct {
	Regional              decimal.Decimal `json:"regional"`
	Seasonal              decimal.Decimal `json:"seasonal"`
	Combined              decimal.Decimal `json:"combined"`
	WeekendHolidayPercent decimal.Decimal `json:"weekend_holiday"`
}

// resolveMultipliers derives the full multiplier stack for a move.
func resolveMultipliers(cfg RateConfig, originPostal, destinationPostal string, moveDate time.Time) Multipliers {
	regional := decimal.Max(
		regionMultiplier(cfg, originPostal),
		regionMultiplier(cfg, destinationPostal),
	)
	seasonal := seasonalMultiplier(cfg, moveDate)
	return Multipliers{
		Regional:              regional,
		Seasonal:              seasonal,
		Combined:              regional.Mul(seasonal),
		WeekendHolidayPercent: weekendHolidayPercent(cfg, moveDate),
	}
}

// regionMultiplier looks up the 2-character postal prefix in the region
// table. Disabled pricing is 1.0; unset or unmatched codes use the default
// region's multiplier.
func regionMultiplier(cfg RateConfig, postalCode string) decimal.Decimal {
	if !cfg.EnableRegionalPricing {
		return decimal.NewFromInt(1)
	}
	if len(postalCode) < 2 {
		return cfg.DefaultRegionMultiplier
	}
	prefix := postalCode[:2]
	for _, rule := range cfg.Regions {
		if rule.Prefix == prefix {
			return rule.Multiplier
		}
	}
	return cfg.DefaultRegionMultiplier
}

func seasonalMultiplier(cfg RateConfig, moveDate time.Time) decimal.Decimal {
	if !cfg.EnableSeasonalPricing || moveDate.IsZero() {
		return decimal.NewFromInt(1)
	}
	month := moveDate.Month()
	for _, peak := range cfg.PeakMonths {
		if month == peak {
			return cfg.PeakMultiplier
		}
	}
	for _, offPeak := range cfg.OffPeakMonths {
		if month == offPeak {
			return cfg.OffPeakMultiplier
		}
	}
	return decimal.NewFromInt(1)
}

// weekendHolidayPercent resolves the additive calendar surcharge. The holiday
// check runs first: a holiday on a weekday still gets the holiday rate.
func weekendHolidayPercent(cfg RateConfig, moveDate time.Time) decimal.Decimal {
	if moveDate.IsZero() {
		return decimal.Zero
	}
	monthDay := moveDate.Format("01-02")
	for _, holiday := range cfg.Holidays {
		if monthDay == holiday {
			return cfg.HolidaySurchargePercent
		}
	}
	switch moveDate.Weekday() {
	case time.Saturday, time.Sunday:
		return cfg.WeekendSurchargePercent
	}
	return decimal.Zero
}
