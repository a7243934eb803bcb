package models

import "github.com/shopspring/decimal"

var (
	// ethanolDensity is the density of pure ethanol in g/ml.
	ethanolDensity = decimal.RequireFromString("0.789")
	// gramsPerStandardDrink is the grams of pure alcohol in one standard drink.
	gramsPerStandardDrink = decimal.NewFromInt(14)
	mlPerLiter            = decimal.NewFromInt(1000)
)

// Product represents an alcoholic beverage in the catalog.
// Price, Volume (ml) and AlcoholPercentage (percentage points, e.g. 40 for 40%)
// are exact decimals so the derived metrics round deterministically.
type Product struct {
	ID                string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string          `json:"name" gorm:"not null"`
	Price             decimal.Decimal `json:"price" gorm:"type:decimal(12,4)"`
	Volume            decimal.Decimal `json:"volume" gorm:"type:decimal(12,4)"`
	AlcoholPercentage decimal.Decimal `json:"alcoholPercentage" gorm:"type:decimal(12,4)"`
	UserID            string          `json:"userId" gorm:"index;type:varchar(36)"`
}

// ProductInput is the mutation payload for creating or updating a product.
// A nil UserID on update preserves the stored owner (partial-update rule).
type ProductInput struct {
	Name              string          `json:"name" validate:"notblank"`
	Price             decimal.Decimal `json:"price" validate:"gt=0"`
	Volume            decimal.Decimal `json:"volume" validate:"gt=0"`
	AlcoholPercentage decimal.Decimal `json:"alcoholPercentage" validate:"gt=0"`
	UserID            *string         `json:"userId"`
}

// ProductFilter narrows a product listing. An empty UserID matches everything.
type ProductFilter struct {
	UserID string `json:"userId"`
}

// ValueRatio returns the ml of pure alcohol obtained per unit of currency,
// rounded half-up to 4 decimal places. A zero price yields zero.
func (p Product) ValueRatio() decimal.Decimal {
	if p.Price.IsZero() {
		return decimal.Zero
	}
	pureAlcoholMl := p.Volume.Mul(p.AlcoholPercentage)
	return pureAlcoholMl.DivRound(p.Price, 4)
}

// PricePerLiter returns the price scaled to a full liter. The division is
// rounded half-up to 4 decimal places before multiplying by 1000. A zero
// volume yields zero.
func (p Product) PricePerLiter() decimal.Decimal {
	if p.Volume.IsZero() {
		return decimal.Zero
	}
	return p.Price.DivRound(p.Volume, 4).Mul(mlPerLiter)
}

// StandardDrinks returns the number of ~14g-of-ethanol standard drinks in the
// product, rounded half-up to 2 decimal places. The volume is multiplied by
// the raw percentage points, mirroring the stored-field contract.
func (p Product) StandardDrinks() decimal.Decimal {
	pureAlcoholMl := p.Volume.Mul(p.AlcoholPercentage)
	pureAlcoholGrams := pureAlcoholMl.Mul(ethanolDensity)
	return pureAlcoholGrams.DivRound(gramsPerStandardDrink, 2)
}

// PricePerStandardDrink returns the price of a single standard drink, rounded
// half-up to 2 decimal places. Zero standard drinks yields zero.
func (p Product) PricePerStandardDrink() decimal.Decimal {
	drinks := p.StandardDrinks()
	if drinks.IsZero() {
		return decimal.Zero
	}
	return p.Price.DivRound(drinks, 2)
}
