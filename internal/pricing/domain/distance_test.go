package pricing

import "testing"

func TestDistanceCost_NearTier(t *testing.T) {
	cfg := DefaultRates()
	min, max := distanceCost(cfg, dec("30"))
	if !min.Equal(dec("54")) || !max.Equal(dec("66")) {
		t.Fatalf("expected (54, 66), got (%s, %s)", min, max)
	}
}

func TestDistanceCost_AtThreshold(t *testing.T) {
	cfg := DefaultRates()
	min, max := distanceCost(cfg, dec("50"))
	if !min.Equal(dec("90")) || !max.Equal(dec("110")) {
		t.Fatalf("expected (90, 110), got (%s, %s)", min, max)
	}
}

func TestDistanceCost_FarTier(t *testing.T) {
	cfg := DefaultRates()
	// 50*2 + 50*1 = 150 base, +-10% spread.
	min, max := distanceCost(cfg, dec("100"))
	if !min.Equal(dec("135")) || !max.Equal(dec("165")) {
		t.Fatalf("expected (135, 165), got (%s, %s)", min, max)
	}
}

func TestDistanceCost_ZeroDistance(t *testing.T) {
	cfg := DefaultRates()
	min, max := distanceCost(cfg, dec("0"))
	if !min.IsZero() || !max.IsZero() {
		t.Fatalf("expected (0, 0), got (%s, %s)", min, max)
	}
}
