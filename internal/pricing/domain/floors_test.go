package pricing

import "testing"

func TestFloorSurcharge_ExtraFloorsAccumulate(t *testing.T) {
	cfg := DefaultRates()
	min, max := floorSurcharge(cfg, dec("1000"), dec("1400"), Endpoint{Floor: 5}, Endpoint{Floor: 0})
	// 3 extra floors: 1000*0.15*3 and 1400*0.15*3.
	if !min.Equal(dec("450")) || !max.Equal(dec("630")) {
		t.Fatalf("expected (450, 630), got (%s, %s)", min, max)
	}
}

func TestFloorSurcharge_ElevatorZeroesEndpoint(t *testing.T) {
	cfg := DefaultRates()
	min, max := floorSurcharge(cfg, dec("1000"), dec("1400"), Endpoint{Floor: 8, HasElevator: true}, Endpoint{Floor: 4})
	// Only the destination contributes: 2 extra floors.
	if !min.Equal(dec("300")) || !max.Equal(dec("420")) {
		t.Fatalf("expected (300, 420), got (%s, %s)", min, max)
	}
}

func TestFloorSurcharge_WithinFreeAllowance(t *testing.T) {
	cfg := DefaultRates()
	min, max := floorSurcharge(cfg, dec("1000"), dec("1400"), Endpoint{Floor: 2}, Endpoint{Floor: 1})
	if !min.IsZero() || !max.IsZero() {
		t.Fatalf("expected zero surcharge, got (%s, %s)", min, max)
	}
}
