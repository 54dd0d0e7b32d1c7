package bcrypt

import (
	"golang.org/x/crypto/bcrypt"
	"testing"
)

func TestComparePassword(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		stored   string
		password string
		want     bool
	}{
		{"hashed match", hash, "s3cret", true},
		{"hashed mismatch", hash, "nope", false},
		{"plain match", "s3cret", "s3cret", true},
		{"plain mismatch", "s3cret", "S3cret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.ComparePassword(tt.stored, tt.password); got != tt.want {
				t.Errorf("ComparePassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsHash(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)
	hash, _ := b.HashPassword("x")

	if !b.IsHash(hash) {
		t.Error("expected bcrypt hash to be detected")
	}
	if b.IsHash("$2plain") || b.IsHash("plain") {
		t.Error("plain values should not be detected as hashes")
	}
}
