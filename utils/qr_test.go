package utils

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRCode(t *testing.T) {
	data, err := GenerateQRCode("eyJ0aWQiOiJUS1QifQ.abcdef", TicketQRSize)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, TicketQRSize, img.Bounds().Dx())

	_, err = GenerateQRCode("", TicketQRSize)
	assert.Error(t, err)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(4)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9A-F]{8}$`, code)
}
