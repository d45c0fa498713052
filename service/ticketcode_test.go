package service

import (
	"encoding/base64"
	"regexp"
	"strings"
	"testing"
	"time"

	"event_ticketing/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketCodePattern = regexp.MustCompile(`^TKT-[0-9A-F]{8}-[0-9A-Z]+-[0-9A-F]{8}-\d+$`)

func TestNewTicketCode_Format(t *testing.T) {
	issued := time.UnixMilli(1700000000000)

	code, err := NewTicketCode("3f2a9c1e-0b7d-4c55-9a10-1e2f3a4b5c6d", issued, 7)

	require.NoError(t, err)
	assert.Regexp(t, ticketCodePattern, code)
	assert.True(t, strings.HasPrefix(code, "TKT-3F2A9C1E-"))
	assert.True(t, strings.HasSuffix(code, "-7"))
	assert.Contains(t, code, "-LOYW3V28-")
}

func TestNewTicketCode_UniqueWithinOrder(t *testing.T) {
	issued := time.Now()
	seen := make(map[string]struct{}, 500)

	for i := 1; i <= 500; i++ {
		code, err := NewTicketCode("order-id-1234", issued, i)
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %s", code)
		seen[code] = struct{}{}
	}
}

func TestTicketSigner_RoundTrip(t *testing.T) {
	signer := NewTicketSigner("ticket-secret")
	claims := TicketClaims{TicketCode: "TKT-1", EventID: "e1", UserID: "u1", IssuedAt: 1700000000}

	payload, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verify(payload)
	require.NoError(t, err)
	assert.Equal(t, claims, got)
}

func TestTicketSigner_RejectsTampering(t *testing.T) {
	signer := NewTicketSigner("ticket-secret")
	payload, err := signer.Sign(TicketClaims{TicketCode: "TKT-1", EventID: "e1", UserID: "u1", IssuedAt: 1})
	require.NoError(t, err)

	encoded, signature, _ := strings.Cut(payload, ".")
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"tid":"TKT-2","eid":"e1","uid":"u1","iat":1}`))

	cases := map[string]string{
		"swapped body":  forged + "." + signature,
		"no separator":  encoded + signature,
		"bad base64":    "***." + signature,
		"truncated mac": encoded + "." + signature[:10],
		"empty":         "",
	}
	for name, p := range cases {
		_, err := signer.Verify(p)
		assert.ErrorIs(t, err, model.ErrInvalidTicketPayload, name)
	}

	_, err = NewTicketSigner("other-secret").Verify(payload)
	assert.ErrorIs(t, err, model.ErrInvalidTicketPayload)
}

func TestTicketSigner_RequiresSecret(t *testing.T) {
	_, err := NewTicketSigner("").Sign(TicketClaims{TicketCode: "x"})
	assert.ErrorIs(t, err, model.ErrMissingSecret)
}
