package auth

import (
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// PasswordHasher produces and checks one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// BcryptHasher hashes with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. A cost of 0 uses the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Argon2Hasher hashes with argon2id in PHC encoded form.
type Argon2Hasher struct {
	config argon2.Config
}

// NewArgon2Hasher returns an argon2id hasher with the library defaults.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{config: argon2.DefaultConfig()}
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(encoded), nil
}

func (h *Argon2Hasher) Verify(plaintext, hash string) bool {
	ok, err := argon2.VerifyEncoded([]byte(plaintext), []byte(hash))
	return err == nil && ok
}

// MigratingHasher hashes with the configured algorithm and verifies hashes of
// any supported algorithm, recognised by their encoded prefix.
type MigratingHasher struct {
	primary PasswordHasher
	bcrypt  *BcryptHasher
	argon2  *Argon2Hasher
}

// NewPasswordHasher returns the hasher for algorithm ("bcrypt" or "argon2id").
func NewPasswordHasher(algorithm string) (*MigratingHasher, error) {
	h := &MigratingHasher{
		bcrypt: NewBcryptHasher(0),
		argon2: NewArgon2Hasher(),
	}
	switch algorithm {
	case "", "bcrypt":
		h.primary = h.bcrypt
	case "argon2id":
		h.primary = h.argon2
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}
	return h, nil
}

func (h *MigratingHasher) Hash(plaintext string) (string, error) {
	return h.primary.Hash(plaintext)
}

func (h *MigratingHasher) Verify(plaintext, hash string) bool {
	switch {
	case strings.HasPrefix(hash, "$argon2"):
		return h.argon2.Verify(plaintext, hash)
	case strings.HasPrefix(hash, "$2"):
		return h.bcrypt.Verify(plaintext, hash)
	default:
		return false
	}
}
