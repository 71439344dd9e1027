package services

import (
	"fmt"

	"millflow/internal/core/domain/model/kernel"
	"millflow/internal/pkg/errs"
)

// WeightLedger is the pure arithmetic over a processing record's weight
// fields. It has no state and no side effects; the transfer use cases call it
// before any write to decide whether a move is possible.
type WeightLedger struct{}

// NewWeightLedger creates the ledger service.
func NewWeightLedger() WeightLedger {
	return WeightLedger{}
}

// ComputeBalance returns received - transferred.
// Fails with errs.ErrNegativeBalance when transferred exceeds received.
func (WeightLedger) ComputeBalance(received, transferred kernel.Weight) (kernel.Weight, error) {
	balance, err := received.Sub(transferred)
	if err != nil {
		return kernel.ZeroWeight(), fmt.Errorf(
			"computing balance of %s received and %s transferred: %w",
			received.String(), transferred.String(), err,
		)
	}
	return balance, nil
}

// ValidateTransferRequest checks that requested weight fits within the weight
// still available on the source record (received - alreadyTransferred).
// Fails with errs.ErrInsufficientWeight otherwise.
func (l WeightLedger) ValidateTransferRequest(received, alreadyTransferred, requested kernel.Weight) error {
	balance, err := l.ComputeBalance(received, alreadyTransferred)
	if err != nil {
		return err
	}
	if balance.LessThan(requested) {
		return fmt.Errorf("%w: requested %s, available %s",
			errs.ErrInsufficientWeight, requested.String(), balance.String())
	}
	return nil
}
