// Package qr turns a payment string into a displayable image.
package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Encoder converts text into a scannable image data URI.
type Encoder interface {
	Encode(text string, size int) (string, error)
}

type pngEncoder struct{}

func NewEncoder() Encoder {
	return pngEncoder{}
}

// Encode renders text as a size x size PNG and returns it as a
// base64 data URI, ready for an <img src>.
func (pngEncoder) Encode(text string, size int) (string, error) {
	if text == "" {
		return "", fmt.Errorf("nothing to encode")
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
