package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"contractgen/model"
	"contractgen/pkg/logger"
)

// Drafter produces contract text for new records. Implemented by AIService;
// tests substitute a stub to simulate upstream failure.
type Drafter interface {
	DraftContract(ctx context.Context, contractType, clientName, clientAddress string) (content string, degraded bool)
}

// ContractService orchestrates contract CRUD over a Store. All mutating
// operations read, modify and rewrite the whole document under one mutex so
// concurrent requests cannot lose each other's writes.
type ContractService struct {
	store Store
	ai    Drafter
	mu    sync.Mutex
}

func NewContractService(store Store, ai Drafter) *ContractService {
	return &ContractService{store: store, ai: ai}
}

// Create validates the request fields, drafts the contract content and
// persists the new record. The returned degraded flag reports whether the
// content came from the fallback template.
func (s *ContractService) Create(ctx context.Context, clientName, clientAddress, contractType string) (*model.Contract, bool, error) {
	if clientName == "" || clientAddress == "" || contractType == "" {
		return nil, false, newError(ErrorInvalidInput, "Client name, address, and contract type are required", nil)
	}
	if !model.IsValidContractType(contractType) {
		return nil, false, newError(ErrorInvalidInput, "Invalid contract type", nil)
	}

	content, degraded := s.ai.DraftContract(ctx, contractType, clientName, clientAddress)

	now := time.Now().UTC().Format(time.RFC3339)
	contract := model.Contract{
		ID:              newContractID(),
		ClientName:      clientName,
		ClientAddress:   clientAddress,
		ContractType:    contractType,
		ContractContent: content,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	contracts, err := s.load()
	if err != nil {
		return nil, false, err
	}
	contracts = append(contracts, contract)
	if err := s.save(contracts); err != nil {
		return nil, false, err
	}

	logger.Info(ctx, "contract created",
		"contract_id", contract.ID,
		"contract_type", contract.ContractType,
		"degraded", degraded,
	)

	return &contract, degraded, nil
}

// List returns all contracts in stored order.
func (s *ContractService) List() ([]model.Contract, error) {
	return s.load()
}

// Get returns the contract with the given id.
func (s *ContractService) Get(id string) (*model.Contract, error) {
	contracts, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		if contracts[i].ID == id {
			return &contracts[i], nil
		}
	}
	return nil, newError(ErrorNotFound, "Contract not found", nil)
}

// Update applies the patch to the stored record, validating the merged
// result before anything is written. ID and CreatedAt are immutable.
func (s *ContractService) Update(ctx context.Context, id string, patch model.ContractPatch) (*model.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contracts, err := s.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range contracts {
		if contracts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, newError(ErrorNotFound, "Contract not found", nil)
	}

	merged := patch.Apply(contracts[idx])
	if errs := model.ValidateContract(merged); len(errs) > 0 {
		return nil, &Error{
			Code:    ErrorValidationFailed,
			Message: "Validation failed",
			Errors:  errs,
		}
	}

	merged.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	contracts[idx] = merged
	if err := s.save(contracts); err != nil {
		return nil, err
	}

	logger.Info(ctx, "contract updated", "contract_id", id)

	return &merged, nil
}

// Delete removes the contract with the given id.
func (s *ContractService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	contracts, err := s.load()
	if err != nil {
		return err
	}

	idx := -1
	for i := range contracts {
		if contracts[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return newError(ErrorNotFound, "Contract not found", nil)
	}

	contracts = append(contracts[:idx], contracts[idx+1:]...)
	if err := s.save(contracts); err != nil {
		return err
	}

	logger.Info(ctx, "contract deleted", "contract_id", id)

	return nil
}

func (s *ContractService) load() ([]model.Contract, error) {
	contracts, err := s.store.Load()
	if err != nil {
		return nil, newError(ErrorStorage, "failed to load contracts", err)
	}
	return contracts, nil
}

func (s *ContractService) save(contracts []model.Contract) error {
	if err := s.store.Save(contracts); err != nil {
		return newError(ErrorStorage, "failed to save contracts", err)
	}
	return nil
}

// newContractID returns a UUIDv7: a millisecond timestamp prefix plus random
// tail, so ids created in rapid succession stay unique and roughly ordered.
func newContractID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
