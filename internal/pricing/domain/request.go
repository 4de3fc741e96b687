package pricing

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType identifies an optional add-on service.
type ServiceType string

const (
	ServicePermit           ServiceType = "permit"
	ServiceKitchenAssembly  ServiceType = "kitchen_assembly"
	ServiceExternalLift     ServiceType = "external_lift"
	ServicePacking          ServiceType = "packing"
	ServiceDisassembly      ServiceType = "disassembly"
	ServiceDisposal         ServiceType = "disposal"
	ServiceLongCarry        ServiceType = "long_carry"
	ServiceInsuranceBasic   ServiceType = "insurance_basic"
	ServiceInsurancePremium ServiceType = "insurance_premium"
)

// Metadata keys read by the service cost rules.
const (
	MetaKitchenMeters  = "kitchen_meters"
	MetaDisposalVolume = "disposal_volume_m3"
	MetaCarryDistance  = "carry_distance_m"
	MetaDeclaredValue  = "declared_value"
)

// Endpoint describes one side of the move.
type Endpoint struct {
	PostalCode  string `json:"postal_code,omitempty"`
	Floor       int    `json:"floor"`
	HasElevator bool   `json:"has_elevator"`
}

// InventoryItem is one inventory line. Volume is per piece.
type InventoryItem struct {
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	VolumeM3 decimal.Decimal `json:"volume_m3"`
	Quantity int             `json:"quantity"`
}

// Service is an optional add-on with free-form metadata
// (kitchen meters, disposal volume, carry distance, declared value).
type Service struct {
	Type     ServiceType    `json:"service_type"`
	Enabled  bool           `json:"enabled"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MoveRequest is the engine input. Either an explicit positive VolumeM3 or an
// inventory list must be supplied; when VolumeM3 is zero the inventory is
// aggregated. MoveDate is optional (zero means no calendar adjustments).
type MoveRequest struct {
	VolumeM3        decimal.Decimal `json:"volume_m3"`
	DistanceKm      decimal.Decimal `json:"distance_km"`
	TravelTimeHours decimal.Decimal `json:"travel_time_hours"`
	Origin          Endpoint        `json:"origin"`
	Destination     Endpoint        `json:"destination"`
	Services        []Service       `json:"services,omitempty"`
	Inventory       []InventoryItem `json:"inventory,omitempty"`
	MoveDate        time.Time       `json:"move_date,omitempty"`
}

// Validate rejects negative numeric inputs before any computation.
func (r MoveRequest) Validate() error {
	if r.VolumeM3.IsNegative() {
		return &ValidationError{Field: "volume_m3", Reason: "must not be negative"}
	}
	if r.DistanceKm.IsNegative() {
		return &ValidationError{Field: "distance_km", Reason: "must not be negative"}
	}
	if r.TravelTimeHours.IsNegative() {
		return &ValidationError{Field: "travel_time_hours", Reason: "must not be negative"}
	}
	if r.Origin.Floor < 0 {
		return &ValidationError{Field: "origin.floor", Reason: "must not be negative"}
	}
	if r.Destination.Floor < 0 {
		return &ValidationError{Field: "destination.floor", Reason: "must not be negative"}
	}
	for i, item := range r.Inventory {
		if item.VolumeM3.IsNegative() {
			return &ValidationError{Field: indexedField("inventory", i, "volume_m3"), Reason: "must not be negative"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Field: indexedField("inventory", i, "quantity"), Reason: "must be a positive integer"}
		}
	}
	return nil
}

// hasEnabledService reports whether a service of the given type is enabled.
func hasEnabledService(services []Service, serviceType ServiceType) bool {
	for _, svc := range services {
		if svc.Enabled && svc.Type == serviceType {
			return true
		}
	}
	return false
}

func indexedField(prefix string, index int, field string) string {
	return prefix + "[" + strconv.Itoa(index) + "]." + field
}
