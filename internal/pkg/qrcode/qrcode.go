// Package qrcode validates the attendance QR payload: an ISO-8601 timestamp
// followed by a fixed suffix, e.g. "2024-01-15T12:00:00.000Zsyntax_move".
package qrcode

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidQRCode = errors.New("invalid QR code")
	ErrQRCodeExpired = errors.New("QR code timestamp does not match the requested time")
)

const isoMillis = "2006-01-02T15:04:05.000Z"

type Validator struct {
	suffix   string
	validity time.Duration
}

func NewValidator(suffix string, validity time.Duration) *Validator {
	return &Validator{suffix: suffix, validity: validity}
}

// Generate builds the payload a kiosk encodes into the QR image for t.
func (v *Validator) Generate(t time.Time) string {
	return t.UTC().Format(isoMillis) + v.suffix
}

// Validate checks the payload format and that its embedded timestamp lies
// within the validity window of at. It returns the embedded timestamp.
func (v *Validator) Validate(token string, at time.Time) (time.Time, error) {
	if !strings.HasSuffix(token, v.suffix) {
		return time.Time{}, fmt.Errorf("%w: must end with %q", ErrInvalidQRCode, v.suffix)
	}

	raw := strings.TrimSuffix(token, v.suffix)
	embedded, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid datetime %q", ErrInvalidQRCode, raw)
	}

	diff := embedded.Sub(at)
	if diff < 0 {
		diff = -diff
	}
	if diff > v.validity {
		return time.Time{}, fmt.Errorf("%w: difference %d seconds", ErrQRCodeExpired, int64(diff/time.Second))
	}

	return embedded, nil
}
