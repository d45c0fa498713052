package service

import (
	"context"
	"errors"
	"testing"

	"event_ticketing/constants"
	"event_ticketing/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type materializerFixture struct {
	orders    *mockOrders
	tickets   *mockTickets
	types     *mockTicketTypes
	accounts  *mockAccounts
	notifier  *mockNotifier
	publisher *mockPublisher
	signer    *TicketSigner
	svc       *TicketMaterializer
}

func newMaterializerFixture() *materializerFixture {
	f := &materializerFixture{
		orders:    new(mockOrders),
		tickets:   new(mockTickets),
		types:     new(mockTicketTypes),
		accounts:  new(mockAccounts),
		notifier:  new(mockNotifier),
		publisher: new(mockPublisher),
		signer:    NewTicketSigner("ticket-secret"),
	}
	f.svc = NewTicketMaterializer(f.orders, f.tickets, f.types, f.accounts, f.notifier, f.publisher, f.signer, newTestLogger())
	return f
}

func completedOrder() *model.Order {
	order := &model.Order{
		BuyerID:       "buyer-1",
		EventID:       "event-1",
		Quantity:      3,
		TotalAmount:   decimal.NewFromInt(2000),
		PaymentStatus: model.PaymentCompleted,
		Event:         &model.Event{OrganizerID: "organizer-1", Title: "Launch Night"},
	}
	order.ID = "5d1c7a2b-1111-2222-3333-444455556666"
	order.Event.ID = "event-1"
	return order
}

var (
	staff     = model.Actor{AccountID: "staff-1", Role: constants.ROLE_STAFF}
	owner     = model.Actor{AccountID: "organizer-1", Role: constants.ROLE_ORGANIZER}
	stranger  = model.Actor{AccountID: "organizer-2", Role: constants.ROLE_ORGANIZER}
	customer  = model.Actor{AccountID: "buyer-1", Role: constants.ROLE_CUSTOMER}
	ticketsIn = mock.AnythingOfType("[]model.Ticket")
)

func TestMaterialize_CreatesOneTicketPerUnit(t *testing.T) {
	f := newMaterializerFixture()
	order := completedOrder()
	buyer := &model.Account{Email: "buyer@example.com", Name: "Buyer"}

	var created []model.Ticket
	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
	f.types.On("ListEligibleByEvent", mock.Anything, "event-1").
		Return([]model.TicketType{ticketType("vip", 5000), ticketType("ga", 1000)}, nil)
	f.tickets.On("CreateForOrder", mock.Anything, order.ID, ticketsIn).
		Run(func(args mock.Arguments) { created = args.Get(2).([]model.Ticket) }).
		Return(nil)
	f.publisher.On("PublishOrderUpdate", mock.Anything, mock.MatchedBy(func(u model.OrderUpdate) bool {
		return u.OrderID == order.ID && u.TicketsGenerated == 3
	})).Return(nil)
	f.accounts.On("FindByID", mock.Anything, "buyer-1").Return(buyer, nil)
	f.notifier.On("SendTicketConfirmation", mock.Anything, buyer, order.Event, ticketsIn).Return(nil)

	out, failure := f.svc.Materialize(context.Background(), staff, order.ID).Unwrap()

	require.Nil(t, failure)
	assert.Equal(t, 3, out.TicketsGenerated)
	assert.Equal(t, []TicketTypeSummary{
		{TicketTypeID: "ga", Name: "ga", Quantity: 2},
		{TicketTypeID: "vip", Name: "vip", Quantity: 1},
	}, out.TicketTypes)

	require.Len(t, created, 3)
	codes := map[string]bool{}
	for _, ticket := range created {
		assert.Equal(t, model.TicketUnused, ticket.Status)
		assert.Equal(t, "buyer-1", ticket.UserID)
		assert.Equal(t, order.ID, ticket.OrderID)
		assert.Regexp(t, ticketCodePattern, ticket.TicketCode)
		codes[ticket.TicketCode] = true

		claims, err := f.signer.Verify(ticket.VerificationPayload)
		require.NoError(t, err)
		assert.Equal(t, ticket.TicketCode, claims.TicketCode)
		assert.Equal(t, "event-1", claims.EventID)
		assert.Equal(t, "buyer-1", claims.UserID)
	}
	assert.Len(t, codes, 3)
	assert.Equal(t, "ga", created[0].TicketTypeID)
	assert.Equal(t, "vip", created[2].TicketTypeID)

	f.notifier.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestMaterialize_OwningOrganizerAllowed(t *testing.T) {
	f := newMaterializerFixture()
	order := completedOrder()
	order.Quantity = 1

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
	f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{ticketType("ga", 1000)}, nil)
	f.tickets.On("CreateForOrder", mock.Anything, order.ID, ticketsIn).Return(nil)
	f.publisher.On("PublishOrderUpdate", mock.Anything, mock.Anything).Return(nil)
	f.accounts.On("FindByID", mock.Anything, "buyer-1").Return(&model.Account{Email: "b@example.com"}, nil)
	f.notifier.On("SendTicketConfirmation", mock.Anything, mock.Anything, mock.Anything, ticketsIn).Return(nil)

	res := f.svc.Materialize(context.Background(), owner, order.ID)

	assert.True(t, res.IsOk())
}

func TestMaterialize_NotificationFailureDoesNotFail(t *testing.T) {
	f := newMaterializerFixture()
	order := completedOrder()

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
	f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{ticketType("ga", 1000)}, nil)
	f.tickets.On("CreateForOrder", mock.Anything, order.ID, ticketsIn).Return(nil)
	f.publisher.On("PublishOrderUpdate", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.accounts.On("FindByID", mock.Anything, "buyer-1").Return(&model.Account{Email: "b@example.com"}, nil)
	f.notifier.On("SendTicketConfirmation", mock.Anything, mock.Anything, mock.Anything, ticketsIn).Return(errors.New("smtp down"))

	out, failure := f.svc.Materialize(context.Background(), staff, order.ID).Unwrap()

	require.Nil(t, failure)
	assert.Equal(t, 3, out.TicketsGenerated)
}

func TestMaterialize_Failures(t *testing.T) {
	tests := []struct {
		name    string
		actor   model.Actor
		setup   func(f *materializerFixture, order *model.Order)
		kind    Kind
		message string
	}{
		{
			name:    "customer is not authorized",
			actor:   customer,
			setup:   func(*materializerFixture, *model.Order) {},
			kind:    KindUnauthorized,
			message: "not authorized",
		},
		{
			name:  "organizer of another event",
			actor: stranger,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
			},
			kind:    KindUnauthorized,
			message: "not authorized",
		},
		{
			name:  "order missing",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(nil, model.ErrOrderNotFound)
			},
			kind:    KindNotFound,
			message: "order not found",
		},
		{
			name:  "order still pending",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				order.PaymentStatus = model.PaymentPending
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
			},
			kind:    KindInvalidState,
			message: "not completed",
		},
		{
			name:  "tickets already issued",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
				f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(3), nil)
			},
			kind:    KindInvalidState,
			message: "tickets already exist",
		},
		{
			name:  "no eligible ticket types",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
				f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
				f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{}, nil)
			},
			kind:    KindInvalidState,
			message: "no ticket types available",
		},
		{
			name:  "concurrent materialization wins the race",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
				f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
				f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{ticketType("ga", 1000)}, nil)
				f.tickets.On("CreateForOrder", mock.Anything, order.ID, ticketsIn).Return(model.ErrTicketsAlreadyExist)
			},
			kind:    KindInvalidState,
			message: "tickets already exist",
		},
		{
			name:  "insert fails",
			actor: staff,
			setup: func(f *materializerFixture, order *model.Order) {
				f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
				f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
				f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{ticketType("ga", 1000)}, nil)
				f.tickets.On("CreateForOrder", mock.Anything, order.ID, ticketsIn).Return(errors.New("connection reset"))
			},
			kind:    KindInternal,
			message: "failed to create tickets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMaterializerFixture()
			order := completedOrder()
			tt.setup(f, order)

			_, failure := f.svc.Materialize(context.Background(), tt.actor, order.ID).Unwrap()

			require.NotNil(t, failure)
			assert.Equal(t, tt.kind, failure.Kind)
			assert.Equal(t, tt.message, failure.Message)
			f.notifier.AssertNotCalled(t, "SendTicketConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			f.publisher.AssertNotCalled(t, "PublishOrderUpdate", mock.Anything, mock.Anything)
			f.orders.AssertExpectations(t)
			f.tickets.AssertExpectations(t)
		})
	}
}

func TestMaterialize_RejectsShortAllocation(t *testing.T) {
	f := newMaterializerFixture()
	order := completedOrder()
	f.svc.distribute = func(int, decimal.Decimal, []model.TicketType) []Allocation {
		return []Allocation{{TicketType: ticketType("ga", 1000), Quantity: 2}}
	}

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(0), nil)
	f.types.On("ListEligibleByEvent", mock.Anything, "event-1").Return([]model.TicketType{ticketType("ga", 1000)}, nil)

	_, failure := f.svc.Materialize(context.Background(), staff, order.ID).Unwrap()

	require.NotNil(t, failure)
	assert.Equal(t, KindDistributionFailed, failure.Kind)
	f.tickets.AssertNotCalled(t, "CreateForOrder", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderUpdate", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "SendTicketConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMaterialize_SystemActorSkipsOwnership(t *testing.T) {
	f := newMaterializerFixture()
	order := completedOrder()
	order.Event = nil

	f.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.tickets.On("CountByOrder", mock.Anything, order.ID).Return(int64(1), nil)

	_, failure := f.svc.Materialize(context.Background(), model.SystemActor(), order.ID).Unwrap()

	require.NotNil(t, failure)
	assert.Equal(t, KindInvalidState, failure.Kind)
}
