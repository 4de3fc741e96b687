package pricing

import "github.com/shopspring/decimal"

// TotalVolume sums inventory line volumes (volume x quantity).
// An empty inventory yields zero.
func TotalVolume(items []InventoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.VolumeM3.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
