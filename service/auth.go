package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"event_ticketing/helper"
	"event_ticketing/model"
)

type AuthService struct {
	accounts  AccountFinder
	jwtSecret string
	tokenTTL  time.Duration
	log       *slog.Logger
}

func NewAuthService(accounts AccountFinder, jwtSecret string, tokenTTL time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, input model.LoginInput) Result[model.TokenData] {
	account, err := s.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return Fail[model.TokenData](KindUnauthorized, "invalid credentials")
		}
		s.log.Error("load account", slog.String("error", err.Error()))
		return Fail[model.TokenData](KindInternal, "failed to load account")
	}
	if !account.Active || !helper.CheckPasswordHash(input.Password, account.Password) {
		return Fail[model.TokenData](KindUnauthorized, "invalid credentials")
	}

	token, err := helper.GenerateAccessToken(s.jwtSecret, s.tokenTTL, account)
	if err != nil {
		s.log.Error("sign access token", slog.String("error", err.Error()))
		return Fail[model.TokenData](KindInternal, "failed to issue token")
	}
	return Ok(model.TokenData{AccessToken: token, ExpiresIn: int64(s.tokenTTL.Seconds())})
}
