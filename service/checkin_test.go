package service

import (
	"context"
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCheckinStore struct{ mock.Mock }

func (m *mockCheckinStore) FindByCode(ctx context.Context, code string) (*model.Ticket, error) {
	args := m.Called(ctx, code)
	ticket, _ := args.Get(0).(*model.Ticket)
	return ticket, args.Error(1)
}

func (m *mockCheckinStore) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, usedAt)
	return args.Bool(0), args.Error(1)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) FindByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	event, _ := args.Get(0).(*model.Event)
	return event, args.Error(1)
}

const scannedCode = "TKT-5D1C7A2B-LOYW3V28-0A1B2C3D-1"

func issuedTicket(status model.TicketStatus) *model.Ticket {
	ticket := &model.Ticket{
		TicketCode:   scannedCode,
		UserID:       "buyer-1",
		TicketTypeID: "ga",
		OrderID:      "order-1",
		Status:       status,
		TicketType:   &model.TicketType{EventID: "event-1", Name: "General"},
	}
	ticket.ID = "ticket-1"
	return ticket
}

func launchEvent() *model.Event {
	event := &model.Event{OrganizerID: "organizer-1", Title: "Launch Night"}
	event.ID = "event-1"
	return event
}

func signedPayload(t *testing.T, signer *TicketSigner, claims TicketClaims) string {
	t.Helper()
	payload, err := signer.Sign(claims)
	require.NoError(t, err)
	return payload
}

func validClaims() TicketClaims {
	return TicketClaims{TicketCode: scannedCode, EventID: "event-1", UserID: "buyer-1", IssuedAt: 1767225600000}
}

func TestCheckin_AdmitsOnce(t *testing.T) {
	signer := NewTicketSigner("ticket-secret")
	tickets := new(mockCheckinStore)
	events := new(mockEvents)
	svc := NewCheckinService(tickets, events, signer, newTestLogger())

	tickets.On("FindByCode", mock.Anything, scannedCode).Return(issuedTicket(model.TicketUnused), nil)
	events.On("FindByID", mock.Anything, "event-1").Return(launchEvent(), nil)
	tickets.On("MarkUsed", mock.Anything, "ticket-1", mock.Anything).Return(true, nil).Once()
	tickets.On("MarkUsed", mock.Anything, "ticket-1", mock.Anything).Return(false, nil).Once()

	payload := signedPayload(t, signer, validClaims())

	resp, failure := svc.Verify(context.Background(), owner, payload).Unwrap()
	require.Nil(t, failure)
	assert.Equal(t, model.TicketUsed, resp.Status)
	assert.Equal(t, scannedCode, resp.TicketCode)
	assert.NotNil(t, resp.UsedAt)

	_, failure = svc.Verify(context.Background(), staff, payload).Unwrap()
	require.NotNil(t, failure)
	assert.Equal(t, KindInvalidState, failure.Kind)
}

func TestCheckin_Rejections(t *testing.T) {
	signer := NewTicketSigner("ticket-secret")

	tests := []struct {
		name    string
		actor   model.Actor
		payload func(t *testing.T) string
		ticket  *model.Ticket
		kind    Kind
	}{
		{
			name:    "customer cannot scan",
			actor:   customer,
			payload: func(t *testing.T) string { return signedPayload(t, signer, validClaims()) },
			kind:    KindUnauthorized,
		},
		{
			name:  "forged payload",
			actor: staff,
			payload: func(t *testing.T) string {
				return signedPayload(t, NewTicketSigner("someone-else"), validClaims())
			},
			kind: KindValidation,
		},
		{
			name:  "claims for another buyer",
			actor: staff,
			payload: func(t *testing.T) string {
				claims := validClaims()
				claims.UserID = "buyer-2"
				return signedPayload(t, signer, claims)
			},
			ticket: issuedTicket(model.TicketUnused),
			kind:   KindValidation,
		},
		{
			name:    "organizer of another event",
			actor:   stranger,
			payload: func(t *testing.T) string { return signedPayload(t, signer, validClaims()) },
			ticket:  issuedTicket(model.TicketUnused),
			kind:    KindUnauthorized,
		},
		{
			name:    "already scanned",
			actor:   staff,
			payload: func(t *testing.T) string { return signedPayload(t, signer, validClaims()) },
			ticket:  issuedTicket(model.TicketUsed),
			kind:    KindInvalidState,
		},
		{
			name:    "refunded",
			actor:   staff,
			payload: func(t *testing.T) string { return signedPayload(t, signer, validClaims()) },
			ticket:  issuedTicket(model.TicketRefunded),
			kind:    KindInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets := new(mockCheckinStore)
			events := new(mockEvents)
			svc := NewCheckinService(tickets, events, signer, newTestLogger())
			if tt.ticket != nil {
				tickets.On("FindByCode", mock.Anything, scannedCode).Return(tt.ticket, nil)
				events.On("FindByID", mock.Anything, "event-1").Return(launchEvent(), nil)
			}

			_, failure := svc.Verify(context.Background(), tt.actor, tt.payload(t)).Unwrap()

			require.NotNil(t, failure)
			assert.Equal(t, tt.kind, failure.Kind)
			tickets.AssertNotCalled(t, "MarkUsed", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckin_GetTicket(t *testing.T) {
	tickets := new(mockCheckinStore)
	events := new(mockEvents)
	svc := NewCheckinService(tickets, events, NewTicketSigner("ticket-secret"), newTestLogger())

	tickets.On("FindByCode", mock.Anything, scannedCode).Return(issuedTicket(model.TicketUnused), nil)
	tickets.On("FindByCode", mock.Anything, "TKT-MISSING").Return(nil, model.ErrTicketNotFound)
	events.On("FindByID", mock.Anything, "event-1").Return(launchEvent(), nil)

	assert.True(t, svc.GetTicket(context.Background(), customer, scannedCode).IsOk())
	assert.True(t, svc.GetTicket(context.Background(), owner, scannedCode).IsOk())

	_, failure := svc.GetTicket(context.Background(), stranger, scannedCode).Unwrap()
	require.NotNil(t, failure)
	assert.Equal(t, KindUnauthorized, failure.Kind)

	_, failure = svc.GetTicket(context.Background(), staff, "TKT-MISSING").Unwrap()
	require.NotNil(t, failure)
	assert.Equal(t, KindNotFound, failure.Kind)
}

func TestToTicketResponse(t *testing.T) {
	resp, err := toTicketResponse(issuedTicket(model.TicketUnused))
	require.NoError(t, err)
	assert.Equal(t, issuedTicket(model.TicketUnused).TicketCode, resp.TicketCode)

	_, err = toTicketResponse(nil)
	assert.ErrorIs(t, err, copier.ErrInvalidCopyFrom)
}
