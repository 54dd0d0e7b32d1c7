package entity

import (
	"errors"
	"math"
	"testing"
)

func TestConfig_Threshold(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    float64
		wantErr error
	}{
		{name: "unset", raw: nil, want: DefaultScore},
		{name: "float", raw: 0.65, want: 0.65},
		{name: "string", raw: "0.7", want: 0.7},
		{name: "blank", raw: " ", want: DefaultScore},
		{name: "word", raw: "high", want: DefaultScore, wantErr: ErrInvalidThreshold},
		{name: "nan string", raw: "NaN", want: DefaultScore, wantErr: ErrInvalidThreshold},
		{name: "nan float", raw: math.NaN(), want: DefaultScore, wantErr: ErrInvalidThreshold},
		{name: "infinity", raw: "+Inf", want: DefaultScore, wantErr: ErrInvalidThreshold},
		{name: "negative infinity", raw: math.Inf(-1), want: DefaultScore, wantErr: ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{}
			if tt.raw != nil {
				cfg[ConfigScore] = tt.raw
			}

			got, err := cfg.Threshold()
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_Enabled(t *testing.T) {
	cfg := Config{"a": "TRUE", "b": true, "c": "FALSE", "d": "maybe"}

	for key, want := range map[string]bool{"a": true, "b": true, "c": false, "d": false, "missing": false} {
		if got := cfg.Enabled(key); got != want {
			t.Errorf("%s: expected %v, got %v", key, want, got)
		}
	}
}
