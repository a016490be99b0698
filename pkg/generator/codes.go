package generator

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

const tokenBytes = 32

// Token returns a random bearer token for session storage.
func Token() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ScanCode returns a new item scan code. The code ends up inside the printed
// QR label and is the public lookup key for borrow and return.
func ScanCode() string {
	return uuid.New().String()
}
