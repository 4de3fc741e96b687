package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// servicesCost sums the cost of every enabled add-on service. Disabled and
// unknown service types contribute nothing. Disassembly carries no direct
// cost here: its price is entirely labor, captured by the effort estimate.
func servicesCost(cfg RateConfig, volume decimal.Decimal, services []Service) (decimal.Decimal, decimal.Decimal, error) {
	minCost := decimal.Zero
	maxCost := decimal.Zero

	for _, svc := range services {
		if !svc.Enabled {
			continue
		}
		switch svc.Type {
		case ServicePermit:
			minCost = minCost.Add(cfg.PermitCost)
			maxCost = maxCost.Add(cfg.PermitCost)

		case ServiceKitchenAssembly:
			meters, err := metadataDecimal(svc, MetaKitchenMeters)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			cost := meters.Mul(cfg.KitchenAssemblyPerMeter)
			minCost = minCost.Add(cost)
			maxCost = maxCost.Add(cost)

		case ServiceExternalLift:
			minCost = minCost.Add(cfg.ExternalLiftCostMin)
			maxCost = maxCost.Add(cfg.ExternalLiftCostMax)

		case ServicePacking:
			// Consumables only; packing labor lives in the effort estimate.
			cost := volume.Mul(cfg.PackingMaterialsPerM3)
			minCost = minCost.Add(cost)
			maxCost = maxCost.Add(cost)

		case ServiceDisassembly:
			// Labor only, no materials.

		case ServiceDisposal:
			disposalVolume, err := metadataDecimal(svc, MetaDisposalVolume)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			cost := cfg.DisposalBaseFee.Add(disposalVolume.Mul(cfg.DisposalPerM3))
			minCost = minCost.Add(cost)
			maxCost = maxCost.Add(cost)

		case ServiceLongCarry:
			carryDistance, err := metadataDecimal(svc, MetaCarryDistance)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			cost := longCarryCost(cfg, carryDistance)
			minCost = minCost.Add(cost)
			maxCost = maxCost.Add(cost)

		case ServiceInsuranceBasic:
			minCost = minCost.Add(cfg.InsuranceBasicFee)
			maxCost = maxCost.Add(cfg.InsuranceBasicFee)

		case ServiceInsurancePremium:
			declared, err := metadataDecimal(svc, MetaDeclaredValue)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			cost := decimal.Max(declared.Mul(cfg.InsurancePremiumPercent), cfg.InsurancePremiumMinimum)
			minCost = minCost.Add(cost)
			maxCost = maxCost.Add(cost)
		}
	}

	return minCost, maxCost, nil
}

// longCarryCost bills ceil(chargeable / unit) units beyond the free distance.
func longCarryCost(cfg RateConfig, carryDistanceMeters decimal.Decimal) decimal.Decimal {
	chargeable := carryDistanceMeters.Sub(cfg.LongCarryFreeMeters)
	if chargeable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	units := chargeable.Div(cfg.LongCarryUnitMeters).Ceil()
	return units.Mul(cfg.LongCarryPerUnit)
}

// metadataDecimal reads a numeric metadata field. A missing field is zero; a
// present value that does not parse as a decimal is a ValidationError naming
// the field.
func metadataDecimal(svc Service, key string) (decimal.Decimal, error) {
	raw, ok := svc.Metadata[key]
	if !ok || raw == nil {
		return decimal.Zero, nil
	}
	value, err := coerceDecimal(key, raw)
	if err != nil {
		return decimal.Zero, &ValidationError{
			Field:  fmt.Sprintf("services[%s].%s", svc.Type, key),
			Reason: "not a decimal number",
		}
	}
	return value, nil
}
