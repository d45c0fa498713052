package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// TicketQRSize is the edge length in pixels of ticket QR images.
const TicketQRSize = 320

// GenerateQRCode encodes content as a size x size PNG.
func GenerateQRCode(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	qr, err := qrcode.New(content, qrcode.High)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(size)); err != nil {
		return nil, fmt.Errorf("write qr png: %w", err)
	}
	return buf.Bytes(), nil
}
