package model

import "event_ticketing/constants"

type Account struct {
	DTO
	Email    string `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name     string `gorm:"size:255" json:"name"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"size:20;not null;default:CUSTOMER" json:"role"`
	Active   bool   `gorm:"not null;default:true" json:"active"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type TokenData struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Actor is the caller on whose behalf a service operation runs.
type Actor struct {
	AccountID string
	Role      string
}

func SystemActor() Actor {
	return Actor{Role: constants.ROLE_SYSTEM}
}

// IsStaff reports platform-level access: admins, staff and background jobs.
func (a Actor) IsStaff() bool {
	switch a.Role {
	case constants.ROLE_ADMIN, constants.ROLE_STAFF, constants.ROLE_SYSTEM:
		return true
	}
	return false
}

func (a Actor) IsOrganizer() bool {
	return a.Role == constants.ROLE_ORGANIZER
}

// CanManageEvent is true for staff and for the organizer who owns the event.
func (a Actor) CanManageEvent(e *Event) bool {
	if a.IsStaff() {
		return true
	}
	return e != nil && a.IsOrganizer() && a.AccountID != "" && e.OrganizerID == a.AccountID
}
