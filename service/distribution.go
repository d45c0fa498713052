package service

import (
	"fmt"
	"sort"

	"event_ticketing/model"

	"github.com/shopspring/decimal"
)

// Allocation is how many units of an order go to one ticket type.
type Allocation struct {
	TicketType model.TicketType
	Quantity   int
}

// Distribute splits quantity across ticket types, cheapest first, spending
// totalAmount on as many units of each type as it covers. The most expensive
// type takes whatever quantity is left. Input order breaks price ties.
func Distribute(quantity int, totalAmount decimal.Decimal, types []model.TicketType) []Allocation {
	if quantity <= 0 || len(types) == 0 {
		return nil
	}
	if len(types) == 1 {
		return []Allocation{{TicketType: types[0], Quantity: quantity}}
	}

	sorted := make([]model.TicketType, len(types))
	copy(sorted, types)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})

	remainingQuantity := quantity
	remainingValue := totalAmount
	allocations := make([]Allocation, 0, len(sorted))

	for _, tt := range sorted[:len(sorted)-1] {
		if remainingQuantity == 0 {
			break
		}
		allocated := affordable(remainingValue, tt.Price, remainingQuantity)
		if allocated <= 0 {
			continue
		}
		allocations = append(allocations, Allocation{TicketType: tt, Quantity: allocated})
		remainingQuantity -= allocated
		remainingValue = remainingValue.Sub(tt.Price.Mul(decimal.NewFromInt(int64(allocated))))
	}

	if remainingQuantity > 0 {
		allocations = append(allocations, Allocation{TicketType: sorted[len(sorted)-1], Quantity: remainingQuantity})
	}
	return allocations
}

// affordable is min(floor(value/price), limit). A free type is unbounded,
// even when no value is left: it absorbs units before any paid type does.
func affordable(value, price decimal.Decimal, limit int) int {
	if price.Sign() <= 0 {
		return limit
	}
	if value.Sign() <= 0 {
		return 0
	}
	units, _ := value.QuoRem(price, 0)
	if units.GreaterThanOrEqual(decimal.NewFromInt(int64(limit))) {
		return limit
	}
	return int(units.IntPart())
}

// VerifyAllocations checks that allocations add up to exactly quantity.
func VerifyAllocations(quantity int, allocations []Allocation) error {
	total := 0
	for _, a := range allocations {
		if a.Quantity < 0 {
			return fmt.Errorf("%w: negative allocation for %s", model.ErrDistributionMismatch, a.TicketType.ID)
		}
		total += a.Quantity
	}
	if total != quantity {
		return fmt.Errorf("%w: allocated %d of %d", model.ErrDistributionMismatch, total, quantity)
	}
	return nil
}

// MinorUnits converts a major-unit amount to the provider's minor unit,
// rounding half away from zero.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
