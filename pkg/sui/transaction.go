package sui

// ExecutionStatus is the outcome the ledger reports for an executed transaction.
type ExecutionStatus string

const (
	StatusSuccess ExecutionStatus = "SUCCESS"
	StatusFailure ExecutionStatus = "FAILURE"
)

type GasSummary struct {
	ComputationCost         uint64
	StorageCost             uint64
	StorageRebate           uint64
	NonRefundableStorageFee uint64
}

// TransactionEffects is the ledger's execution record for one transaction.
type TransactionEffects struct {
	Digest         Digest
	Status         ExecutionStatus
	Error          string
	LamportVersion uint64
	Checkpoint     *uint64
	Gas            GasSummary
}

func (e *TransactionEffects) Succeeded() bool {
	return e != nil && e.Status == StatusSuccess
}

// TransactionBlock is the finality record looked up by digest.
type TransactionBlock struct {
	Digest  Digest
	Effects *TransactionEffects
}

// UserSignature is a serialized (flag || signature || public key) signature in base64.
type UserSignature string
