package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateEffortHours_BaseOnly(t *testing.T) {
	cfg := DefaultRates()
	hours := estimateEffortHours(cfg, dec("40"), Endpoint{}, Endpoint{}, false, false)
	if !hours.Equal(dec("4.8")) {
		t.Fatalf("expected 4.8 hours, got %s", hours)
	}
}

func TestEstimateEffortHours_MinimumFloor(t *testing.T) {
	cfg := DefaultRates()
	hours := estimateEffortHours(cfg, dec("10"), Endpoint{}, Endpoint{}, false, false)
	if !hours.Equal(dec("4")) {
		t.Fatalf("expected clamp to 4 hours, got %s", hours)
	}
}

func TestEstimateEffortHours_StairsSkippedWithElevator(t *testing.T) {
	cfg := DefaultRates()
	withStairs := estimateEffortHours(cfg, dec("40"), Endpoint{Floor: 3}, Endpoint{}, false, false)
	// 4.8 + 3*40*0.02 = 7.2
	if !withStairs.Equal(dec("7.2")) {
		t.Fatalf("expected 7.2 hours with stairs, got %s", withStairs)
	}
	withElevator := estimateEffortHours(cfg, dec("40"), Endpoint{Floor: 3, HasElevator: true}, Endpoint{}, false, false)
	if !withElevator.Equal(dec("4.8")) {
		t.Fatalf("expected elevator to zero stairs effort, got %s", withElevator)
	}
}

func TestEstimateEffortHours_ServiceFactorsStack(t *testing.T) {
	cfg := DefaultRates()
	hours := estimateEffortHours(cfg, dec("40"), Endpoint{Floor: 1}, Endpoint{}, true, true)
	// 4.8 + 1*40*0.02 + 40*0.15 + 40*0.25 = 21.6
	if !hours.Equal(dec("21.6")) {
		t.Fatalf("expected 21.6 hours, got %s", hours)
	}
}

func TestCrewSize_StepFunction(t *testing.T) {
	cfg := DefaultRates()
	cases := []struct {
		volume string
		want   int
	}{
		{"0", 2},
		{"19", 2},
		{"20", 3},
		{"44", 3},
		{"45", 4},
		{"100", 4},
	}
	for _, tc := range cases {
		if got := crewSize(cfg, dec(tc.volume)); got != tc.want {
			t.Fatalf("volume %s: expected crew %d, got %d", tc.volume, tc.want, got)
		}
	}
}

func TestCrewSize_MinMoversRaisesFloor(t *testing.T) {
	cfg := DefaultRates()
	cfg.MinMovers = 4
	if got := crewSize(cfg, dec("10")); got != 4 {
		t.Fatalf("expected min_movers to force crew 4, got %d", got)
	}
}

func TestTruckTravelHours_BreakAboveThreshold(t *testing.T) {
	cfg := DefaultRates()
	short := truckTravelHours(cfg, dec("2"))
	if !short.Equal(dec("2.3")) {
		t.Fatalf("expected 2.3 truck hours, got %s", short)
	}
	// 4 * 1.15 = 4.6 > 4.5, so the mandatory break applies.
	long := truckTravelHours(cfg, dec("4"))
	if !long.Equal(dec("5.35")) {
		t.Fatalf("expected 5.35 truck hours with break, got %s", long)
	}
}

func TestClockDuration_TravelNotDividedByCrew(t *testing.T) {
	duration := clockDuration(dec("4.8"), 3, dec("2.3"))
	if !duration.Equal(dec("3.9")) {
		t.Fatalf("expected 3.9 clock hours, got %s", duration)
	}
}

func TestTotalVolume(t *testing.T) {
	items := []InventoryItem{
		{Name: "sofa", VolumeM3: dec("1.5"), Quantity: 2},
		{Name: "box", VolumeM3: dec("0.1"), Quantity: 10},
	}
	if got := TotalVolume(items); !got.Equal(dec("4")) {
		t.Fatalf("expected total volume 4, got %s", got)
	}
	if got := TotalVolume(nil); !got.Equal(decimal.Zero) {
		t.Fatalf("expected empty inventory to be zero, got %s", got)
	}
}
