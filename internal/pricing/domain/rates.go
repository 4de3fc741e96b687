package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// HeavyItemRule maps an inventory keyword to a flat handling surcharge.
// Rules are matched in slice order; the first match wins.
type HeavyItemRule struct {
	Keyword   string
	Surcharge decimal.Decimal
}

// RegionRule maps a 2-character postal prefix to a regional multiplier.
type RegionRule struct {
	Prefix     string
	Multiplier decimal.Decimal
}

// RateConfig holds every tunable pricing parameter. It is immutable per
// engine instance; live reload must swap the whole value, never mutate fields.
type RateConfig struct {
	BaseRatePerM3Min decimal.Decimal
	BaseRatePerM3Max decimal.Decimal

	RatePerKmNear  decimal.Decimal
	RatePerKmFar   decimal.Decimal
	KmThreshold    decimal.Decimal
	DistanceSpread decimal.Decimal

	HourlyLaborMin decimal.Decimal
	HourlyLaborMax decimal.Decimal
	MinMovers      int

	BaseEffortPerM3           decimal.Decimal
	StairsEffortPerM3PerFloor decimal.Decimal
	DisassemblyEffortFactor   decimal.Decimal
	PackingEffortFactor       decimal.Decimal
	MinimumEffortHours        decimal.Decimal

	TruckSpeedFactor    decimal.Decimal
	BreakThresholdHours decimal.Decimal
	BreakHours          decimal.Decimal

	FreeFloors            int
	FloorSurchargePercent decimal.Decimal

	LiftSuggestFloor       int
	LiftSuggestVolumeM3    decimal.Decimal
	LiftSuggestVolumeFloor int

	PermitCost              decimal.Decimal
	KitchenAssemblyPerMeter decimal.Decimal
	ExternalLiftCostMin     decimal.Decimal
	ExternalLiftCostMax     decimal.Decimal
	PackingMaterialsPerM3   decimal.Decimal
	DisposalBaseFee         decimal.Decimal
	DisposalPerM3           decimal.Decimal
	LongCarryFreeMeters     decimal.Decimal
	LongCarryUnitMeters     decimal.Decimal
	LongCarryPerUnit        decimal.Decimal
	InsuranceBasicFee       decimal.Decimal
	InsurancePremiumPercent decimal.Decimal
	InsurancePremiumMinimum decimal.Decimal

	HeavyItems []HeavyItemRule

	EnableRegionalPricing   bool
	Regions                 []RegionRule
	DefaultRegionMultiplier decimal.Decimal

	EnableSeasonalPricing bool
	PeakMonths            []time.Month
	PeakMultiplier        decimal.Decimal
	OffPeakMonths         []time.Month
	OffPeakMultiplier     decimal.Decimal

	WeekendSurchargePercent decimal.Decimal
	HolidaySurchargePercent decimal.Decimal
	// Holidays are fixed-date entries in "01-02" (MM-DD) form.
	Holidays []string

	VATRate decimal.Decimal
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultRates returns the documented global defaults.
func DefaultRates() RateConfig {
	return RateConfig{
		BaseRatePerM3Min: dec("25"),
		BaseRatePerM3Max: dec("35"),

		RatePerKmNear:  dec("2"),
		RatePerKmFar:   dec("1"),
		KmThreshold:    dec("50"),
		DistanceSpread: dec("0.10"),

		HourlyLaborMin: dec("60"),
		HourlyLaborMax: dec("80"),
		MinMovers:      2,

		BaseEffortPerM3:           dec("0.12"),
		StairsEffortPerM3PerFloor: dec("0.02"),
		DisassemblyEffortFactor:   dec("0.15"),
		PackingEffortFactor:       dec("0.25"),
		MinimumEffortHours:        dec("4"),

		TruckSpeedFactor:    dec("1.15"),
		BreakThresholdHours: dec("4.5"),
		BreakHours:          dec("0.75"),

		FreeFloors:            2,
		FloorSurchargePercent: dec("0.15"),

		LiftSuggestFloor:       4,
		LiftSuggestVolumeM3:    dec("50"),
		LiftSuggestVolumeFloor: 2,

		PermitCost:              dec("120"),
		KitchenAssemblyPerMeter: dec("45"),
		ExternalLiftCostMin:     dec("350"),
		ExternalLiftCostMax:     dec("500"),
		PackingMaterialsPerM3:   dec("15"),
		DisposalBaseFee:         dec("150"),
		DisposalPerM3:           dec("40"),
		LongCarryFreeMeters:     dec("10"),
		LongCarryUnitMeters:     dec("10"),
		LongCarryPerUnit:        dec("25"),
		InsuranceBasicFee:       dec("50"),
		InsurancePremiumPercent: dec("0.01"),
		InsurancePremiumMinimum: dec("75"),

		HeavyItems: []HeavyItemRule{
			{Keyword: "piano", Surcharge: dec("250")},
			{Keyword: "safe", Surcharge: dec("180")},
			{Keyword: "aquarium", Surcharge: dec("120")},
		},

		EnableRegionalPricing: false,
		Regions: []RegionRule{
			{Prefix: "10", Multiplier: dec("1.08")},
			{Prefix: "12", Multiplier: dec("1.08")},
			{Prefix: "20", Multiplier: dec("1.10")},
			{Prefix: "22", Multiplier: dec("1.10")},
			{Prefix: "50", Multiplier: dec("1.05")},
			{Prefix: "60", Multiplier: dec("1.12")},
			{Prefix: "70", Multiplier: dec("1.10")},
			{Prefix: "80", Multiplier: dec("1.15")},
		},
		DefaultRegionMultiplier: dec("1"),

		EnableSeasonalPricing: false,
		PeakMonths:            []time.Month{time.May, time.June, time.July, time.August, time.September},
		PeakMultiplier:        dec("1.15"),
		OffPeakMonths:         []time.Month{time.December, time.January, time.February},
		OffPeakMultiplier:     dec("1"),

		WeekendSurchargePercent: dec("0.10"),
		HolidaySurchargePercent: dec("0.15"),
		Holidays: []string{
			"01-01", "05-01", "10-03", "12-24", "12-25", "12-26", "12-31",
		},

		VATRate: dec("0.19"),
	}
}

// ResolveRates merges a tenant override map onto the global defaults.
// Unknown keys are ignored; a provided value that cannot be coerced to its
// expected type yields a ConfigError. No range validation happens here:
// out-of-range values are accepted as configured business policy.
func ResolveRates(overrides map[string]any) (RateConfig, error) {
	cfg := DefaultRates()
	if len(overrides) == 0 {
		return cfg, nil
	}

	decimalFields := map[string]*decimal.Decimal{
		"base_rate_per_m3_min":          &cfg.BaseRatePerM3Min,
		"base_rate_per_m3_max":          &cfg.BaseRatePerM3Max,
		"rate_per_km_near":              &cfg.RatePerKmNear,
		"rate_per_km_far":               &cfg.RatePerKmFar,
		"km_threshold":                  &cfg.KmThreshold,
		"distance_spread":               &cfg.DistanceSpread,
		"hourly_labor_min":              &cfg.HourlyLaborMin,
		"hourly_labor_max":              &cfg.HourlyLaborMax,
		"base_effort_per_m3":            &cfg.BaseEffortPerM3,
		"stairs_effort_per_m3_per_floor": &cfg.StairsEffortPerM3PerFloor,
		"disassembly_effort_factor":     &cfg.DisassemblyEffortFactor,
		"packing_effort_factor":         &cfg.PackingEffortFactor,
		"minimum_effort_hours":          &cfg.MinimumEffortHours,
		"truck_speed_factor":            &cfg.TruckSpeedFactor,
		"break_threshold_hours":         &cfg.BreakThresholdHours,
		"break_hours":                   &cfg.BreakHours,
		"floor_surcharge_percent":       &cfg.FloorSurchargePercent,
		"permit_cost":                   &cfg.PermitCost,
		"kitchen_assembly_per_meter":    &cfg.KitchenAssemblyPerMeter,
		"external_lift_cost_min":        &cfg.ExternalLiftCostMin,
		"external_lift_cost_max":        &cfg.ExternalLiftCostMax,
		"packing_materials_per_m3":      &cfg.PackingMaterialsPerM3,
		"disposal_base_fee":             &cfg.DisposalBaseFee,
		"disposal_per_m3":               &cfg.DisposalPerM3,
		"long_carry_free_meters":        &cfg.LongCarryFreeMeters,
		"long_carry_unit_meters":        &cfg.LongCarryUnitMeters,
		"long_carry_per_unit":           &cfg.LongCarryPerUnit,
		"insurance_basic_fee":           &cfg.InsuranceBasicFee,
		"insurance_premium_percent":     &cfg.InsurancePremiumPercent,
		"insurance_premium_minimum":     &cfg.InsurancePremiumMinimum,
		"lift_suggest_volume_m3":        &cfg.LiftSuggestVolumeM3,
		"default_region_multiplier":     &cfg.DefaultRegionMultiplier,
		"seasonal_peak_multiplier":      &cfg.PeakMultiplier,
		"seasonal_offpeak_multiplier":   &cfg.OffPeakMultiplier,
		"weekend_surcharge_percent":     &cfg.WeekendSurchargePercent,
		"holiday_surcharge_percent":     &cfg.HolidaySurchargePercent,
		"vat_rate":                      &cfg.VATRate,
	}
	intFields := map[string]*int{
		"min_movers":                &cfg.MinMovers,
		"free_floors":               &cfg.FreeFloors,
		"lift_suggest_floor":        &cfg.LiftSuggestFloor,
		"lift_suggest_volume_floor": &cfg.LiftSuggestVolumeFloor,
	}
	boolFields := map[string]*bool{
		"enable_regional_pricing": &cfg.EnableRegionalPricing,
		"enable_seasonal_pricing": &cfg.EnableSeasonalPricing,
	}

	for key, raw := range overrides {
		if target, ok := decimalFields[key]; ok {
			value, err := coerceDecimal(key, raw)
			if err != nil {
				return cfg, err
			}
			*target = value
			continue
		}
		if target, ok := intFields[key]; ok {
			value, err := coerceInt(key, raw)
			if err != nil {
				return cfg, err
			}
			*target = value
			continue
		}
		if target, ok := boolFields[key]; ok {
			value, ok := raw.(bool)
			if !ok {
				return cfg, &ConfigError{Key: key, Reason: "expected boolean"}
			}
			*target = value
			continue
		}

		switch key {
		case "heavy_item_surcharges":
			rules, err := coerceHeavyItems(key, raw)
			if err != nil {
				return cfg, err
			}
			cfg.HeavyItems = rules
		case "regional_multipliers":
			rules, err := coerceRegions(key, raw)
			if err != nil {
				return cfg, err
			}
			cfg.Regions = rules
		case "seasonal_peak_months":
			months, err := coerceMonths(key, raw)
			if err != nil {
				return cfg, err
			}
			cfg.PeakMonths = months
		case "seasonal_offpeak_months":
			months, err := coerceMonths(key, raw)
			if err != nil {
				return cfg, err
			}
			cfg.OffPeakMonths = months
		case "public_holidays":
			days, err := coerceStrings(key, raw)
			if err != nil {
				return cfg, err
			}
			cfg.Holidays = days
		default:
			// Unknown keys fall through to defaults.
		}
	}
	return cfg, nil
}

// LoadOverridesFile reads a YAML override map from disk.
func LoadOverridesFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	overrides := map[string]any{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

// LoadRatesFile reads a YAML override map and resolves it onto the defaults.
func LoadRatesFile(path string) (RateConfig, error) {
	overrides, err := LoadOverridesFile(path)
	if err != nil {
		return RateConfig{}, err
	}
	return ResolveRates(overrides)
}

func coerceDecimal(key string, raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		value, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, &ConfigError{Key: key, Reason: "not a decimal number: " + strconv.Quote(v)}
		}
		return value, nil
	case fmt.Stringer:
		value, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, &ConfigError{Key: key, Reason: "not a decimal number: " + strconv.Quote(v.String())}
		}
		return value, nil
	default:
		return decimal.Zero, &ConfigError{Key: key, Reason: fmt.Sprintf("expected number, got %T", raw)}
	}
}

func coerceInt(key string, raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case json.Number:
		value, err := v.Int64()
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: "not an integer: " + strconv.Quote(v.String())}
		}
		return int(value), nil
	case float64:
		if v != float64(int(v)) {
			return 0, &ConfigError{Key: key, Reason: "expected integer"}
		}
		return int(v), nil
	case string:
		value, err := strconv.Atoi(v)
		if err != nil {
			return 0, &ConfigError{Key: key, Reason: "not an integer: " + strconv.Quote(v)}
		}
		return value, nil
	default:
		return 0, &ConfigError{Key: key, Reason: fmt.Sprintf("expected integer, got %T", raw)}
	}
}

// coerceHeavyItems accepts a keyword->surcharge mapping. Keys are sorted so
// first-match-wins behavior stays deterministic regardless of map iteration.
func coerceHeavyItems(key string, raw any) ([]HeavyItemRule, error) {
	mapping, err := coerceMap(key, raw)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rules := make([]HeavyItemRule, 0, len(keys))
	for _, k := range keys {
		value, err := coerceDecimal(key+"."+k, mapping[k])
		if err != nil {
			return nil, err
		}
		rules = append(rules, HeavyItemRule{Keyword: k, Surcharge: value})
	}
	return rules, nil
}

func coerceRegions(key string, raw any) ([]RegionRule, error) {
	mapping, err := coerceMap(key, raw)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rules := make([]RegionRule, 0, len(keys))
	for _, k := range keys {
		value, err := coerceDecimal(key+"."+k, mapping[k])
		if err != nil {
			return nil, err
		}
		rules = append(rules, RegionRule{Prefix: k, Multiplier: value})
	}
	return rules, nil
}

func coerceMap(key string, raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[any]any:
		mapping := make(map[string]any, len(v))
		for k, value := range v {
			name, ok := k.(string)
			if !ok {
				return nil, &ConfigError{Key: key, Reason: "expected string keys"}
			}
			mapping[name] = value
		}
		return mapping, nil
	default:
		return nil, &ConfigError{Key: key, Reason: fmt.Sprintf("expected mapping, got %T", raw)}
	}
}

func coerceMonths(key string, raw any) ([]time.Month, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, &ConfigError{Key: key, Reason: fmt.Sprintf("expected list, got %T", raw)}
	}
	months := make([]time.Month, 0, len(list))
	for _, entry := range list {
		value, err := coerceInt(key, entry)
		if err != nil {
			return nil, err
		}
		if value < 1 || value > 12 {
			return nil, &ConfigError{Key: key, Reason: "month out of range: " + strconv.Itoa(value)}
		}
		months = append(months, time.Month(value))
	}
	return months, nil
}

func coerceStrings(key string, raw any) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, &ConfigError{Key: key, Reason: fmt.Sprintf("expected list, got %T", raw)}
	}
	values := make([]string, 0, len(list))
	for _, entry := range list {
		value, ok := entry.(string)
		if !ok {
			return nil, &ConfigError{Key: key, Reason: fmt.Sprintf("expected string entries, got %T", entry)}
		}
		values = append(values, value)
	}
	return values, nil
}
