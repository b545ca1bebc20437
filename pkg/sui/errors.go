package sui

import (
	"errors"
	"fmt"
)

// Kind names one failure class of the assembly and confirmation pipeline.
type Kind string

const (
	KindRemoteQuery            Kind = "remote_query"
	KindObjectNotFound         Kind = "object_not_found"
	KindObjectContentsNotFound Kind = "object_contents_not_found"
	KindGasCoinNotFound        Kind = "gas_coin_not_found"
	KindInvalidGasInput        Kind = "invalid_gas_input"
	KindReferenceGasPrice      Kind = "reference_gas_price"
	KindTransactionBuilding    Kind = "transaction_building"
	KindTransactionSigning     Kind = "transaction_signing"
	KindTransactionExecution   Kind = "transaction_execution"
	KindInvalidEffects         Kind = "invalid_transaction_effects"
	KindFinalityTimeout        Kind = "finality_timeout"
)

var kindMessages = map[Kind]string{
	KindRemoteQuery:            "remote query failed",
	KindObjectNotFound:         "object not found",
	KindObjectContentsNotFound: "object contents not found",
	KindGasCoinNotFound:        "no gas coin with minimum budget found",
	KindInvalidGasInput:        "error while building gas input",
	KindReferenceGasPrice:      "could not get reference gas price",
	KindTransactionBuilding:    "error while building transaction",
	KindTransactionSigning:     "error while signing transaction",
	KindTransactionExecution:   "transaction execution failed",
	KindInvalidEffects:         "could not get transaction effects",
	KindFinalityTimeout:        "transaction finality not observed",
}

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrRemoteQuery            = &Error{Kind: KindRemoteQuery}
	ErrObjectNotFound         = &Error{Kind: KindObjectNotFound}
	ErrObjectContentsNotFound = &Error{Kind: KindObjectContentsNotFound}
	ErrGasCoinNotFound        = &Error{Kind: KindGasCoinNotFound}
	ErrInvalidGasInput        = &Error{Kind: KindInvalidGasInput}
	ErrReferenceGasPrice      = &Error{Kind: KindReferenceGasPrice}
	ErrTransactionBuilding    = &Error{Kind: KindTransactionBuilding}
	ErrTransactionSigning     = &Error{Kind: KindTransactionSigning}
	ErrTransactionExecution   = &Error{Kind: KindTransactionExecution}
	ErrInvalidEffects         = &Error{Kind: KindInvalidEffects}
	ErrFinalityTimeout        = &Error{Kind: KindFinalityTimeout}
)

// Error is the typed failure returned by every pipeline operation.
type Error struct {
	Kind Kind
	// ID is the object the failure refers to, if any.
	ID *Address
	// Detail carries the status text, builder reason or remote message.
	Detail string
	// Transient is only meaningful for KindRemoteQuery.
	Transient bool
	Err       error
}

func (e *Error) Error() string {
	msg := kindMessages[e.Kind]
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.ID != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.ID)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func ObjectNotFound(id Address) error {
	return &Error{Kind: KindObjectNotFound, ID: &id}
}

func ObjectContentsNotFound(id Address) error {
	return &Error{Kind: KindObjectContentsNotFound, ID: &id}
}

func GasCoinNotFound(owner Address, budget uint64) error {
	return &Error{Kind: KindGasCoinNotFound, Detail: fmt.Sprintf("owner %s, budget %d", owner, budget)}
}

func InvalidGasInput(id Address, reason error) error {
	return &Error{Kind: KindInvalidGasInput, ID: &id, Err: reason}
}

func ReferenceGasPriceUnavailable() error {
	return &Error{Kind: KindReferenceGasPrice}
}

func InvalidEffects(digest Digest) error {
	return &Error{Kind: KindInvalidEffects, Detail: "digest " + digest.String()}
}

func FinalityTimeout(digest Digest, attempts int, reason string) error {
	return &Error{Kind: KindFinalityTimeout, Detail: fmt.Sprintf("digest %s after %d polls: %s", digest, attempts, reason)}
}

func TransactionBuilding(reason error) error {
	return &Error{Kind: KindTransactionBuilding, Err: reason}
}

func TransactionSigning(reason error) error {
	return &Error{Kind: KindTransactionSigning, Err: reason}
}

func TransactionExecution(status ExecutionStatus, detail string) error {
	text := string(status)
	if detail != "" {
		text = fmt.Sprintf("%s: %s", status, detail)
	}
	return &Error{Kind: KindTransactionExecution, Detail: text}
}

// RemoteQuery wraps a collaborator failure. Errors that already carry a Kind
// pass through untouched.
func RemoteQuery(err error, transient bool) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: KindRemoteQuery, Transient: transient, Err: err}
}

// KindOf reports the Kind of err, or "" for untyped errors.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return ""
}

// IsTransient reports whether err is a remote failure worth retrying.
func IsTransient(err error) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind == KindRemoteQuery && typed.Transient
	}
	return false
}
