// Package signer holds an in-memory ed25519 key and signs finalized
// transactions with it.
package signer

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/thounyy/sui-go-utils/pkg/sui"
	"github.com/thounyy/sui-go-utils/pkg/txbuilder"
	"golang.org/x/crypto/blake2b"
)

// FlagEd25519 is the scheme byte prefixed to ed25519 keys, signatures and
// address preimages.
const FlagEd25519 byte = 0x00

type Ed25519 struct {
	key     ed25519.PrivateKey
	address sui.Address
}

// FromSeed builds a signer from a 32-byte ed25519 seed.
func FromSeed(seed []byte) (*Ed25519, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	key := ed25519.NewKeyFromSeed(seed)
	return &Ed25519{key: key, address: deriveAddress(key.Public().(ed25519.PublicKey))}, nil
}

// Parse decodes a base64 private key in the keystore layout: a scheme flag
// byte followed by the 32-byte seed.
func Parse(encoded string) (*Ed25519, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	if len(raw) != 1+ed25519.SeedSize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", 1+ed25519.SeedSize, len(raw))
	}
	if raw[0] != FlagEd25519 {
		return nil, fmt.Errorf("unsupported signature scheme flag 0x%02x", raw[0])
	}
	return FromSeed(raw[1:])
}

// Generate returns a signer over a fresh random key.
func Generate() (*Ed25519, error) {
	_, key, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, err
	}
	return &Ed25519{key: key, address: deriveAddress(key.Public().(ed25519.PublicKey))}, nil
}

func (s *Ed25519) Address() sui.Address {
	return s.address
}

func (s *Ed25519) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

// SignTransaction signs the transaction's intent digest. The result is
// base64(flag || signature || public key).
func (s *Ed25519) SignTransaction(ctx context.Context, tx *txbuilder.Transaction) (sui.UserSignature, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if tx.Sender() != s.address {
		return "", fmt.Errorf("transaction sender %s does not match signer %s", tx.Sender(), s.address)
	}
	digest := tx.SigningDigest()
	sig := ed25519.Sign(s.key, digest[:])

	pub := s.PublicKey()
	out := make([]byte, 0, 1+len(sig)+len(pub))
	out = append(out, FlagEd25519)
	out = append(out, sig...)
	out = append(out, pub...)
	return sui.UserSignature(base64.StdEncoding.EncodeToString(out)), nil
}

func deriveAddress(pub ed25519.PublicKey) sui.Address {
	preimage := make([]byte, 0, 1+len(pub))
	preimage = append(preimage, FlagEd25519)
	preimage = append(preimage, pub...)
	return sui.Address(blake2b.Sum256(preimage))
}
