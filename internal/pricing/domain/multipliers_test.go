package pricing

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRegionMultiplier_DisabledIsOne(t *testing.T) {
	cfg := DefaultRates()
	if got := regionMultiplier(cfg, "80331"); !got.Equal(dec("1")) {
		t.Fatalf("expected 1 when disabled, got %s", got)
	}
}

func TestRegionMultiplier_PrefixLookup(t *testing.T) {
	cfg := DefaultRates()
	cfg.EnableRegionalPricing = true
	if got := regionMultiplier(cfg, "80331"); !got.Equal(dec("1.15")) {
		t.Fatalf("expected 1.15 for Munich prefix, got %s", got)
	}
	if got := regionMultiplier(cfg, "04109"); !got.Equal(dec("1")) {
		t.Fatalf("expected default multiplier for unmatched prefix, got %s", got)
	}
	if got := regionMultiplier(cfg, ""); !got.Equal(dec("1")) {
		t.Fatalf("expected default multiplier for unset postal code, got %s", got)
	}
}

func TestResolveMultipliers_TakesLargerEndpoint(t *testing.T) {
	cfg := DefaultRates()
	cfg.EnableRegionalPricing = true
	m := resolveMultipliers(cfg, "50667", "80331", time.Time{})
	if !m.Regional.Equal(dec("1.15")) {
		t.Fatalf("expected larger regional multiplier 1.15, got %s", m.Regional)
	}
	if !m.Combined.Equal(dec("1.15")) {
		t.Fatalf("expected combined 1.15, got %s", m.Combined)
	}
}

func TestSeasonalMultiplier(t *testing.T) {
	cfg := DefaultRates()
	cfg.EnableSeasonalPricing = true
	if got := seasonalMultiplier(cfg, date(2026, time.July, 15)); !got.Equal(dec("1.15")) {
		t.Fatalf("expected peak multiplier, got %s", got)
	}
	if got := seasonalMultiplier(cfg, date(2026, time.January, 15)); !got.Equal(dec("1")) {
		t.Fatalf("expected off-peak multiplier 1, got %s", got)
	}
	if got := seasonalMultiplier(cfg, date(2026, time.March, 15)); !got.Equal(dec("1")) {
		t.Fatalf("expected shoulder month multiplier 1, got %s", got)
	}
	if got := seasonalMultiplier(cfg, time.Time{}); !got.Equal(dec("1")) {
		t.Fatalf("expected 1 without a date, got %s", got)
	}
	cfg.EnableSeasonalPricing = false
	if got := seasonalMultiplier(cfg, date(2026, time.July, 15)); !got.Equal(dec("1")) {
		t.Fatalf("expected 1 when disabled, got %s", got)
	}
}

func TestWeekendHolidayPercent_HolidayBeatsWeekday(t *testing.T) {
	cfg := DefaultRates()
	// 2026-05-01 is a Friday and a fixed holiday: holiday rate, not zero.
	if got := weekendHolidayPercent(cfg, date(2026, time.May, 1)); !got.Equal(dec("0.15")) {
		t.Fatalf("expected holiday surcharge 0.15, got %s", got)
	}
}

func TestWeekendHolidayPercent_Weekend(t *testing.T) {
	cfg := DefaultRates()
	// 2026-08-29 is a Saturday.
	if got := weekendHolidayPercent(cfg, date(2026, time.August, 29)); !got.Equal(dec("0.10")) {
		t.Fatalf("expected weekend surcharge 0.10, got %s", got)
	}
}

func TestWeekendHolidayPercent_WeekdayAndNoDate(t *testing.T) {
	cfg := DefaultRates()
	// 2026-08-26 is a Wednesday.
	if got := weekendHolidayPercent(cfg, date(2026, time.August, 26)); !got.IsZero() {
		t.Fatalf("expected 0 on a plain weekday, got %s", got)
	}
	if got := weekendHolidayPercent(cfg, time.Time{}); !got.IsZero() {
		t.Fatalf("expected 0 without a date, got %s", got)
	}
}

func TestWeekendHolidayPercent_HolidayOnWeekendUsesHolidayRate(t *testing.T) {
	cfg := DefaultRates()
	// 2026-12-26 is a Saturday and a fixed holiday.
	if got := weekendHolidayPercent(cfg, date(2026, time.December, 26)); !got.Equal(dec("0.15")) {
		t.Fatalf("expected holiday precedence, got %s", got)
	}
}
