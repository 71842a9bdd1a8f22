package proto

import (
	"strconv"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// AddressSize is the length of a program or account address in bytes.
const AddressSize = 32

const jsonNull = "null"

// B58Bytes represents bytes as a Base58 string in JSON.
type B58Bytes []byte

// String represents underlying bytes as a Base58 string.
func (b B58Bytes) String() string {
	return base58.Encode(b)
}

// MarshalJSON writes B58Bytes value as a JSON string.
func (b B58Bytes) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteRune('"')
	sb.WriteString(base58.Encode(b))
	sb.WriteRune('"')
	return []byte(sb.String()), nil
}

// UnmarshalJSON reads B58Bytes from a JSON string.
func (b *B58Bytes) UnmarshalJSON(value []byte) error {
	s := string(value)
	if s == jsonNull {
		*b = nil
		return nil
	}
	s, err := strconv.Unquote(s)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal B58Bytes from JSON")
	}
	if s == "" {
		*b = B58Bytes([]byte{})
		return nil
	}
	v, err := base58.Decode(s)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal B58Bytes from JSON")
	}
	*b = B58Bytes(v)
	return nil
}

// Address identifies a program or an account on the host. There is no key
// material behind it; hosts hand out addresses and programs are looked up
// by them.
type Address [AddressSize]byte

func (a Address) String() string {
	return base58.Encode(a[:])
}

// MarshalJSON writes the address as a Base58 JSON string.
func (a Address) MarshalJSON() ([]byte, error) {
	return B58Bytes(a[:]).MarshalJSON()
}

// UnmarshalJSON reads the address from a Base58 JSON string.
func (a *Address) UnmarshalJSON(value []byte) error {
	var b B58Bytes
	if err := b.UnmarshalJSON(value); err != nil {
		return errors.Wrap(err, "failed to unmarshal Address from JSON")
	}
	if l := len(b); l != AddressSize {
		return errors.Errorf("incorrect Address size %d, expected %d", l, AddressSize)
	}
	copy(a[:], b)
	return nil
}

// NewAddressFromString creates an Address from its Base58 string
// representation.
func NewAddressFromString(s string) (Address, error) {
	var a Address
	b, err := base58.Decode(s)
	if err != nil {
		return a, errors.Wrap(err, "invalid Base58 string")
	}
	return NewAddressFromBytes(b)
}

// NewAddressFromBytes creates an Address from a slice of exactly AddressSize
// bytes.
func NewAddressFromBytes(b []byte) (Address, error) {
	var a Address
	if l := len(b); l != AddressSize {
		return a, errors.Errorf("incorrect Address size %d, expected %d", l, AddressSize)
	}
	copy(a[:], b)
	return a, nil
}

// MustAddressFromString is a NewAddressFromString that panics on malformed
// input. Intended for constants and tests.
func MustAddressFromString(s string) Address {
	a, err := NewAddressFromString(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// NewAddressFromLabel derives the deterministic address for a human-readable
// label. Hosts use it to assign well-known addresses to native programs.
func NewAddressFromLabel(label string) Address {
	return Address(blake2b.Sum256([]byte(label)))
}
