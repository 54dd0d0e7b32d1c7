package bcrypt

import (
	"crypto/subtle"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

type IBcrypt interface {
	HashPassword(password string) (string, error)
	ComparePassword(stored string, password string) bool
	IsHash(value string) bool
}

type bcryptService struct {
	cost int
}

func New() IBcrypt {
	return &bcryptService{
		cost: bcrypt.DefaultCost,
	}
}

func NewWithCost(cost int) IBcrypt {
	return &bcryptService{
		cost: cost,
	}
}

func (b *bcryptService) HashPassword(password string) (string, error) {
	result, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// ComparePassword accepts both hashed passwords and plain ones written into
// config.yaml by hand before the first save through the API.
func (b *bcryptService) ComparePassword(stored string, password string) bool {
	if b.IsHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (b *bcryptService) IsHash(value string) bool {
	if !strings.HasPrefix(value, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
