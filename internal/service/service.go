package service

import (
	"github.com/carson-networks/deposit-validator/internal/operator"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Validation *ValidationService
}

// NewService creates a new Service with the given storage, reference data
// provider, and operator delegator.
func NewService(store *storage.Storage, provider refdata.Provider, op *operator.OperatorDelegator, cooldownDays int) *Service {
	return &Service{
		Validation: NewValidationService(store, provider, op, cooldownDays),
	}
}
