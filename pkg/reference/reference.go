// Package reference mints the transaction references attached to outgoing
// payment requests and signs them so they can later be recognised as
// self-issued without a lookup table.
package reference

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	Prefix   = "LXN"
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// DefaultLength is used when Generate is called with a non-positive length.
	DefaultLength = 8
	// PaymentLength is the random suffix length for payment references.
	PaymentLength = 6
)

// Signed is a reference with its optional HMAC-SHA256 signature (lowercase hex).
type Signed struct {
	Reference string `json:"reference"`
	Signature string `json:"signature,omitempty"`
}

// Generate returns Prefix followed by length characters drawn uniformly from Alphabet.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	buf := make([]byte, len(Prefix)+length)
	copy(buf, Prefix)
	alphabetLen := big.NewInt(int64(len(Alphabet)))
	for i := len(Prefix); i < len(buf); i++ {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// MustGenerate panics if the system random source fails.
func MustGenerate(length int) string {
	ref, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return ref
}

// Sign pairs ref with its signature. An empty secret yields no signature.
func Sign(ref, secret string) Signed {
	out := Signed{Reference: ref}
	if secret != "" {
		out.Signature = signature(ref, secret)
	}
	return out
}

// New mints a fresh reference and signs it with secret.
func New(length int, secret string) (Signed, error) {
	ref, err := Generate(length)
	if err != nil {
		return Signed{}, err
	}
	return Sign(ref, secret), nil
}

// Verify reports whether sig is the signature of ref under secret.
func Verify(ref, sig, secret string) bool {
	if secret == "" || sig == "" {
		return false
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ref))
	return hmac.Equal(mac.Sum(nil), want)
}

func signature(ref, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ref))
	return hex.EncodeToString(mac.Sum(nil))
}
