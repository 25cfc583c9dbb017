// Package address validates Solana addresses and classifies them.
package address

import (
	"errors"
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the decoded length of a Solana address.
const PublicKeyLength = 32

// ErrInvalidAddress is returned when a string is not a base58 public key.
var ErrInvalidAddress = errors.New("invalid address")

// Kind classifies an address by whether it lies on the ed25519 curve.
type Kind string

// Address kinds
const (
	KindUnknown        Kind = ""
	KindWallet         Kind = "wallet"          // on-curve, has a private key
	KindProgramDerived Kind = "program_derived" // off-curve PDA
)

// Normalize trims surrounding whitespace from user input.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Validate checks that s decodes to a 32-byte public key.
func Validate(s string) error {
	_, err := decode(s)
	return err
}

// Classify reports whether s is a wallet or a program-derived address.
// Returns KindUnknown for strings that are not valid addresses.
func Classify(s string) Kind {
	key, err := decode(s)
	if err != nil {
		return KindUnknown
	}
	if isOnCurve(key) {
		return KindWallet
	}
	return KindProgramDerived
}

func decode(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	key, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(key) != PublicKeyLength {
		return nil, fmt.Errorf("%w: decoded length %d", ErrInvalidAddress, len(key))
	}
	return key, nil
}

func isOnCurve(point []byte) bool {
	if len(point) != PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
