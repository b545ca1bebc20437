package sui

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AddressLength is the byte length of account addresses and object ids.
const AddressLength = 32

// Address identifies both accounts and objects on the ledger.
type Address [AddressLength]byte

// ParseAddress accepts 0x-prefixed (or bare) hex. Short forms such as "0x2"
// are left-padded with zeros.
func ParseAddress(s string) (Address, error) {
	var a Address
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if raw == "" {
		return a, fmt.Errorf("parse address %q: empty", s)
	}
	if len(raw) > AddressLength*2 {
		return a, fmt.Errorf("parse address %q: too long", s)
	}
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return a, fmt.Errorf("parse address %q: %w", s, err)
	}
	copy(a[AddressLength-len(b):], b)
	return a, nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// DigestLength is the byte length of object and transaction digests.
const DigestLength = 32

// Digest is a blake2b-256 hash, rendered in base58.
type Digest [DigestLength]byte

func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return d, fmt.Errorf("parse digest %q: %w", s, err)
	}
	if len(b) != DigestLength {
		return d, fmt.Errorf("parse digest %q: length %d", s, len(b))
	}
	copy(d[:], b)
	return d, nil
}

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

// MarshalBCS encodes the digest as a length-prefixed byte vector, which is
// how digests appear inside object references.
func (d Digest) MarshalBCS() ([]byte, error) {
	out := make([]byte, 0, DigestLength+1)
	out = append(out, DigestLength)
	return append(out, d[:]...), nil
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Digest) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDigest(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
