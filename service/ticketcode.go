package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"event_ticketing/model"
	"event_ticketing/utils"
)

// NewTicketCode builds TKT-<order prefix>-<base36 millis>-<random hex>-<index>.
// The index keeps codes unique within an order even when the clock and the
// random part collide.
func NewTicketCode(orderID string, issuedAt time.Time, index int) (string, error) {
	prefix := strings.ReplaceAll(orderID, "-", "")
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	random, err := utils.GenerateCode(4)
	if err != nil {
		return "", fmt.Errorf("ticket code entropy: %w", err)
	}
	code := fmt.Sprintf("TKT-%s-%s-%s-%d",
		prefix,
		strconv.FormatInt(issuedAt.UnixMilli(), 36),
		random,
		index,
	)
	return strings.ToUpper(code), nil
}

// TicketClaims is what a ticket's QR payload vouches for.
type TicketClaims struct {
	TicketCode string `json:"tid"`
	EventID    string `json:"eid"`
	UserID     string `json:"uid"`
	IssuedAt   int64  `json:"iat"`
}

// TicketSigner produces and checks payloads of the form
// base64url(json) "." hex(hmac-sha256(json)).
type TicketSigner struct {
	secret []byte
}

func NewTicketSigner(secret string) *TicketSigner {
	return &TicketSigner{secret: []byte(secret)}
}

func (s *TicketSigner) Sign(claims TicketClaims) (string, error) {
	if len(s.secret) == 0 {
		return "", model.ErrMissingSecret
	}
	body, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode ticket claims: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(body) + "." + s.mac(body), nil
}

func (s *TicketSigner) Verify(payload string) (TicketClaims, error) {
	var claims TicketClaims
	if len(s.secret) == 0 {
		return claims, model.ErrMissingSecret
	}
	encoded, signature, found := strings.Cut(strings.TrimSpace(payload), ".")
	if !found {
		return claims, model.ErrInvalidTicketPayload
	}
	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return claims, model.ErrInvalidTicketPayload
	}
	if !hmac.Equal([]byte(s.mac(body)), []byte(strings.ToLower(signature))) {
		return claims, model.ErrInvalidTicketPayload
	}
	if err := json.Unmarshal(body, &claims); err != nil || claims.TicketCode == "" {
		return claims, model.ErrInvalidTicketPayload
	}
	return claims, nil
}

func (s *TicketSigner) mac(body []byte) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
