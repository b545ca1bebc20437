package txbuilder

import (
	"encoding/base64"

	"github.com/thounyy/sui-go-utils/pkg/sui"
	"golang.org/x/crypto/blake2b"
)

const transactionDataSalt = "TransactionData::"

// intent scope TransactionData, version V0, app id Sui.
var transactionIntent = [3]byte{0, 0, 0}

// Transaction is a finalized, encoded transaction ready to be signed.
type Transaction struct {
	data      []byte
	digest    sui.Digest
	sender    sui.Address
	gasPrice  uint64
	gasBudget uint64
}

func newTransaction(data []byte, sender sui.Address, price, budget uint64) *Transaction {
	data = append([]byte(nil), data...)
	salted := append([]byte(transactionDataSalt), data...)
	return &Transaction{
		data:      data,
		digest:    sui.Digest(blake2b.Sum256(salted)),
		sender:    sender,
		gasPrice:  price,
		gasBudget: budget,
	}
}

// Bytes returns a copy of the encoded transaction data.
func (t *Transaction) Bytes() []byte {
	return append([]byte(nil), t.data...)
}

func (t *Transaction) Base64() string {
	return base64.StdEncoding.EncodeToString(t.data)
}

func (t *Transaction) Digest() sui.Digest {
	return t.digest
}

func (t *Transaction) Sender() sui.Address {
	return t.sender
}

func (t *Transaction) GasPrice() uint64 {
	return t.gasPrice
}

func (t *Transaction) GasBudget() uint64 {
	return t.gasBudget
}

// SigningDigest is the message a signer signs: blake2b-256 of the intent
// prefix followed by the transaction bytes.
func (t *Transaction) SigningDigest() [32]byte {
	msg := make([]byte, 0, len(transactionIntent)+len(t.data))
	msg = append(msg, transactionIntent[:]...)
	msg = append(msg, t.data...)
	return blake2b.Sum256(msg)
}
