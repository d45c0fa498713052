package service

import (
	"testing"

	"event_ticketing/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketType(id string, price int64) model.TicketType {
	tt := model.TicketType{Name: id, Price: decimal.NewFromInt(price)}
	tt.ID = id
	return tt
}

func quantities(allocations []Allocation) map[string]int {
	out := make(map[string]int, len(allocations))
	for _, a := range allocations {
		out[a.TicketType.ID] = a.Quantity
	}
	return out
}

func TestDistribute_SingleTypeTakesEverything(t *testing.T) {
	allocations := Distribute(5, decimal.NewFromInt(123), []model.TicketType{ticketType("ga", 1000)})

	require.Len(t, allocations, 1)
	assert.Equal(t, "ga", allocations[0].TicketType.ID)
	assert.Equal(t, 5, allocations[0].Quantity)
	assert.NoError(t, VerifyAllocations(5, allocations))
}

func TestDistribute_CheapTypeCoversWholeOrder(t *testing.T) {
	types := []model.TicketType{ticketType("vip", 5000), ticketType("ga", 1000)}

	allocations := Distribute(3, decimal.NewFromInt(7000), types)

	assert.Equal(t, map[string]int{"ga": 3}, quantities(allocations))
	assert.NoError(t, VerifyAllocations(3, allocations))
}

func TestDistribute_LastTypeAbsorbsRemainder(t *testing.T) {
	types := []model.TicketType{ticketType("ga", 1000), ticketType("vip", 5000)}

	allocations := Distribute(3, decimal.NewFromInt(2000), types)

	require.Len(t, allocations, 2)
	assert.Equal(t, "ga", allocations[0].TicketType.ID)
	assert.Equal(t, 2, allocations[0].Quantity)
	assert.Equal(t, "vip", allocations[1].TicketType.ID)
	assert.Equal(t, 1, allocations[1].Quantity)
}

func TestDistribute_MiddleTypeCanGetNothing(t *testing.T) {
	types := []model.TicketType{ticketType("vip", 2000), ticketType("standard", 1000), ticketType("early", 500)}

	allocations := Distribute(4, decimal.NewFromInt(1500), types)

	assert.Equal(t, map[string]int{"early": 3, "vip": 1}, quantities(allocations))
	assert.NoError(t, VerifyAllocations(4, allocations))
}

func TestDistribute_FreeTypeTakesRemainingQuantity(t *testing.T) {
	types := []model.TicketType{ticketType("comp", 0), ticketType("ga", 1000)}

	allocations := Distribute(4, decimal.NewFromInt(1000), types)

	assert.Equal(t, map[string]int{"comp": 4}, quantities(allocations))
}

func TestDistribute_FreeTypeAbsorbsZeroValueOrder(t *testing.T) {
	types := []model.TicketType{ticketType("comp", 0), ticketType("ga", 1000)}

	allocations := Distribute(3, decimal.Zero, types)

	assert.Equal(t, map[string]int{"comp": 3}, quantities(allocations))
	assert.NoError(t, VerifyAllocations(3, allocations))
}

func TestDistribute_FractionalPrices(t *testing.T) {
	cheap := ticketType("cheap", 0)
	cheap.Price = decimal.RequireFromString("19.99")
	dear := ticketType("dear", 0)
	dear.Price = decimal.RequireFromString("49.50")

	allocations := Distribute(3, decimal.RequireFromString("89.48"), []model.TicketType{dear, cheap})

	assert.Equal(t, map[string]int{"cheap": 3}, quantities(allocations))
}

func TestDistribute_EqualPricesKeepInputOrder(t *testing.T) {
	types := []model.TicketType{ticketType("first", 1000), ticketType("second", 1000)}

	allocations := Distribute(2, decimal.NewFromInt(1000), types)

	assert.Equal(t, map[string]int{"first": 1, "second": 1}, quantities(allocations))
	assert.Equal(t, "first", allocations[0].TicketType.ID)
}

func TestDistribute_AlwaysSumsToQuantity(t *testing.T) {
	types := []model.TicketType{ticketType("a", 750), ticketType("b", 1200), ticketType("c", 3000), ticketType("d", 0)}

	for quantity := 1; quantity <= 12; quantity++ {
		for _, amount := range []int64{0, 1, 750, 999, 4500, 12000, 100000} {
			allocations := Distribute(quantity, decimal.NewFromInt(amount), types)
			assert.NoError(t, VerifyAllocations(quantity, allocations), "quantity=%d amount=%d", quantity, amount)
		}
	}
}

func TestDistribute_DoesNotReorderCallerSlice(t *testing.T) {
	types := []model.TicketType{ticketType("vip", 5000), ticketType("ga", 1000)}

	Distribute(2, decimal.NewFromInt(6000), types)

	assert.Equal(t, "vip", types[0].ID)
}

func TestVerifyAllocations_RejectsMismatch(t *testing.T) {
	allocations := []Allocation{{TicketType: ticketType("ga", 1000), Quantity: 2}}

	err := VerifyAllocations(3, allocations)

	assert.ErrorIs(t, err, model.ErrDistributionMismatch)
	assert.NoError(t, VerifyAllocations(0, nil))
	assert.ErrorIs(t, VerifyAllocations(1, nil), model.ErrDistributionMismatch)
}

func TestMinorUnits(t *testing.T) {
	cases := map[string]int64{
		"70.00":  7000,
		"19.99":  1999,
		"0.005":  1,
		"10.004": 1000,
		"0":      0,
	}
	for in, want := range cases {
		assert.Equal(t, want, MinorUnits(decimal.RequireFromString(in)), in)
	}
}
