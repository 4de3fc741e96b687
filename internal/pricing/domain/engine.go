package pricing

import "github.com/shopspring/decimal"

// CostRange is a min/max pair for one cost component.
type CostRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Breakdown exposes every intermediate component so callers can audit totals.
type Breakdown struct {
	VolumeCost         CostRange       `json:"volume_cost"`
	DistanceCost       CostRange       `json:"distance_cost"`
	LaborCost          CostRange       `json:"labor_cost"`
	FloorSurcharge     CostRange       `json:"floor_surcharge"`
	ServicesCost       CostRange       `json:"services_cost"`
	HeavyItemSurcharge decimal.Decimal `json:"heavy_item_surcharge"`
	EffortHours        decimal.Decimal `json:"effort_hours"`
	CrewSize           int             `json:"crew_size"`
	TruckTravelHours   decimal.Decimal `json:"truck_travel_hours"`
	Multipliers        Multipliers     `json:"multipliers"`
}

// Suggestions carries advisory flags derived from the request.
type Suggestions struct {
	ExternalLiftOrigin      bool `json:"external_lift_origin"`
	ExternalLiftDestination bool `json:"external_lift_destination"`
}

// QuoteResult is the immutable output of one engine run. All monetary fields
// are rounded to 2 decimal places; VATRate is a plain ratio.
type QuoteResult struct {
	NetMin         decimal.Decimal `json:"net_min"`
	NetMax         decimal.Decimal `json:"net_max"`
	VATMin         decimal.Decimal `json:"vat_min"`
	VATMax         decimal.Decimal `json:"vat_max"`
	GrossMin       decimal.Decimal `json:"gross_min"`
	GrossMax       decimal.Decimal `json:"gross_max"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	VolumeM3       decimal.Decimal `json:"volume_m3"`
	DistanceKm     decimal.Decimal `json:"distance_km"`
	Breakdown      Breakdown       `json:"breakdown"`
	Suggestions    Suggestions     `json:"suggestions"`
}

// Engine computes quotes from an immutable RateConfig. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	rates RateConfig
}

// NewEngine constructs an engine over a resolved rate config.
func NewEngine(rates RateConfig) *Engine {
	return &Engine{rates: rates}
}

// Rates returns the effective rate config.
func (e *Engine) Rates() RateConfig {
	return e.rates
}

// Quote runs the full single-pass calculation:
// volume -> effort/crew -> base costs -> floor surcharge -> services and
// heavy items -> multiplicative regional x seasonal factor -> additive
// weekend/holiday percent -> rounding -> VAT. The multiplicative step must
// precede the additive one; reversing them changes the result.
func (e *Engine) Quote(req MoveRequest) (*QuoteResult, error) {
	if e == nil {
		return nil, ErrNilEngine
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	cfg := e.rates

	volume := req.VolumeM3
	if volume.IsZero() && len(req.Inventory) > 0 {
		volume = TotalVolume(req.Inventory)
	}

	hasDisassembly := hasEnabledService(req.Services, ServiceDisassembly)
	hasPacking := hasEnabledService(req.Services, ServicePacking)

	effortHours := estimateEffortHours(cfg, volume, req.Origin, req.Destination, hasDisassembly, hasPacking)
	crew := crewSize(cfg, volume)
	truckHours := truckTravelHours(cfg, req.TravelTimeHours)
	duration := clockDuration(effortHours, crew, truckHours)

	volumeCostMin := volume.Mul(cfg.BaseRatePerM3Min)
	volumeCostMax := volume.Mul(cfg.BaseRatePerM3Max)

	distanceCostMin, distanceCostMax := distanceCost(cfg, req.DistanceKm)

	laborCostMin := effortHours.Mul(cfg.HourlyLaborMin)
	laborCostMax := effortHours.Mul(cfg.HourlyLaborMax)

	floorBaseMin := volumeCostMin.Add(laborCostMin)
	floorBaseMax := volumeCostMax.Add(laborCostMax)
	floorSurchargeMin, floorSurchargeMax := floorSurcharge(cfg, floorBaseMin, floorBaseMax, req.Origin, req.Destination)

	servicesCostMin, servicesCostMax, err := servicesCost(cfg, volume, req.Services)
	if err != nil {
		return nil, err
	}

	heavySurcharge := heavyItemSurcharge(cfg, req.Inventory)

	multipliers := resolveMultipliers(cfg, req.Origin.PostalCode, req.Destination.PostalCode, req.MoveDate)
	calendarFactor := decimal.NewFromInt(1).Add(multipliers.WeekendHolidayPercent)

	sumMin := volumeCostMin.Add(distanceCostMin).Add(laborCostMin).Add(floorSurchargeMin).Add(servicesCostMin).Add(heavySurcharge)
	sumMax := volumeCostMax.Add(distanceCostMax).Add(laborCostMax).Add(floorSurchargeMax).Add(servicesCostMax).Add(heavySurcharge)

	netMin := sumMin.Mul(multipliers.Combined).Mul(calendarFactor).Round(2)
	netMax := sumMax.Mul(multipliers.Combined).Mul(calendarFactor).Round(2)

	vatMin := netMin.Mul(cfg.VATRate).Round(2)
	vatMax := netMax.Mul(cfg.VATRate).Round(2)

	return &QuoteResult{
		NetMin:         netMin,
		NetMax:         netMax,
		VATMin:         vatMin,
		VATMax:         vatMax,
		GrossMin:       netMin.Add(vatMin),
		GrossMax:       netMax.Add(vatMax),
		VATRate:        cfg.VATRate,
		EstimatedHours: duration.Round(1),
		VolumeM3:       volume.Round(2),
		DistanceKm:     req.DistanceKm.Round(2),
		Breakdown: Breakdown{
			VolumeCost:         CostRange{Min: volumeCostMin.Round(2), Max: volumeCostMax.Round(2)},
			DistanceCost:       CostRange{Min: distanceCostMin.Round(2), Max: distanceCostMax.Round(2)},
			LaborCost:          CostRange{Min: laborCostMin.Round(2), Max: laborCostMax.Round(2)},
			FloorSurcharge:     CostRange{Min: floorSurchargeMin.Round(2), Max: floorSurchargeMax.Round(2)},
			ServicesCost:       CostRange{Min: servicesCostMin.Round(2), Max: servicesCostMax.Round(2)},
			HeavyItemSurcharge: heavySurcharge.Round(2),
			EffortHours:        effortHours.Round(2),
			CrewSize:           crew,
			TruckTravelHours:   truckHours.Round(2),
			Multipliers:        multipliers,
		},
		Suggestions: Suggestions{
			ExternalLiftOrigin:      suggestExternalLift(cfg, req.Origin, volume),
			ExternalLiftDestination: suggestExternalLift(cfg, req.Destination, volume),
		},
	}, nil
}

// suggestExternalLift flags endpoints where carrying by stairs is impractical.
func suggestExternalLift(cfg RateConfig, endpoint Endpoint, volume decimal.Decimal) bool {
	if endpoint.HasElevator {
		return false
	}
	if endpoint.Floor > cfg.LiftSuggestFloor {
		return true
	}
	return volume.GreaterThan(cfg.LiftSuggestVolumeM3) && endpoint.Floor > cfg.LiftSuggestVolumeFloor
}
