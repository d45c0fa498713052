package model

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrSettingNotFound    = errors.New("setting not found")
)

var (
	ErrOrderAlreadyCompleted = errors.New("order already completed")
	ErrOrderNotPending       = errors.New("order is not pending")
	ErrTicketsAlreadyExist   = errors.New("tickets already exist")
	ErrTicketAlreadyUsed     = errors.New("ticket already used")
	ErrInsufficientStock     = errors.New("not enough tickets remaining")
	ErrDistributionMismatch  = errors.New("allocated quantity does not match order quantity")
)

var (
	ErrValidation           = errors.New("validation error")
	ErrInvalidTicketPayload = errors.New("invalid ticket payload")
	ErrMissingSecret        = errors.New("signing secret not configured")
)
