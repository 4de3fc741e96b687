package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// heavyItemSurcharge adds a flat surcharge per matched heavy item. Matching is
// a case-insensitive substring test of name and category against the ordered
// keyword table; each item matches at most one keyword, first match wins.
func heavyItemSurcharge(cfg RateConfig, items []InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		name := strings.ToLower(item.Name)
		category := strings.ToLower(item.Category)
		for _, rule := range cfg.HeavyItems {
			if rule.Keyword == "" {
				continue
			}
			if strings.Contains(name, rule.Keyword) || (category != "" && strings.Contains(category, rule.Keyword)) {
				total = total.Add(rule.Surcharge.Mul(decimal.NewFromInt(int64(item.Quantity))))
				break
			}
		}
	}
	return total
}
