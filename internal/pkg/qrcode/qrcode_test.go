package qrcode

import (
	"errors"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	v := NewValidator("syntax_move", 5*time.Minute)
	at := time.Date(2024, 1, 15, 17, 0, 0, 0, time.FixedZone("PKT", 5*60*60))
	got := v.Generate(at)
	want := "2024-01-15T12:00:00.000Zsyntax_move"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	v := NewValidator("syntax_move", 5*time.Minute)
	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"exact", "2024-01-15T12:00:00.000Zsyntax_move", nil},
		{"no millis", "2024-01-15T12:00:00Zsyntax_move", nil},
		{"offset form", "2024-01-15T17:04:00+05:00syntax_move", nil},
		{"four minutes early", "2024-01-15T11:56:00.000Zsyntax_move", nil},
		{"six minutes late", "2024-01-15T12:06:00.000Zsyntax_move", ErrQRCodeExpired},
		{"wrong suffix", "2024-01-15T12:00:00.000Zother", ErrInvalidQRCode},
		{"garbage datetime", "not-a-datesyntax_move", ErrInvalidQRCode},
		{"empty", "", ErrInvalidQRCode},
	}
	for _, c := range cases {
		_, err := v.Validate(c.token, at)
		if c.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if c.wantErr != nil && !errors.Is(err, c.wantErr) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.wantErr)
		}
	}
}

func TestValidateRoundTrip(t *testing.T) {
	v := NewValidator("syntax_move", 5*time.Minute)
	at := time.Date(2024, 3, 1, 7, 15, 30, 0, time.UTC)
	embedded, err := v.Validate(v.Generate(at), at)
	if err != nil {
		t.Fatalf("Validate(Generate()) error: %v", err)
	}
	if !embedded.Equal(at) {
		t.Errorf("embedded = %v, want %v", embedded, at)
	}
}
