package family

import "github.com/shopspring/decimal"

// PerCapitaIncome sums all family income and divides by the number of
// active members, rounded to 2 decimal places half-up. A family with no
// active members yields 0.00 rather than an error.
func PerCapitaIncome(f *Family) decimal.Decimal {
	active := int64(len(f.ActiveMembers()))
	if active == 0 {
		return decimal.Zero.Round(2)
	}

	total := decimal.Zero
	for _, income := range f.Incomes {
		total = total.Add(income.Amount)
	}

	return total.Div(decimal.NewFromInt(active)).Round(2)
}

// TotalIncome sums all income records of the family.
func TotalIncome(f *Family) decimal.Decimal {
	total := decimal.Zero
	for _, income := range f.Incomes {
		total = total.Add(income.Amount)
	}
	return total
}

// PovertyBand classifies the family's per-capita income against the
// configured lines.
type PovertyBand string

const (
	BandExtremePoverty PovertyBand = "EXTREME_POVERTY"
	BandPoverty        PovertyBand = "POVERTY"
	BandAboveLine      PovertyBand = "ABOVE_LINE"
)

func ClassifyPoverty(perCapita, povertyLine, extremeLine decimal.Decimal) PovertyBand {
	switch {
	case perCapita.LessThanOrEqual(extremeLine):
		return BandExtremePoverty
	case perCapita.LessThanOrEqual(povertyLine):
		return BandPoverty
	default:
		return BandAboveLine
	}
}
