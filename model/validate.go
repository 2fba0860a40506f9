package model

import "strings"

// Validation error messages
const (
	ErrMsgClientName    = "Client name is required and must be a non-empty string"
	ErrMsgClientAddress = "Client address is required and must be a non-empty string"
	ErrMsgContractType  = "Contract type must be one of: Employment Agreement, Loan, Service Agreement"
)

// ValidateContract checks the required fields of a contract and returns the
// full list of validation errors. All checks run independently so the caller
// gets every problem at once, not just the first.
func ValidateContract(c Contract) []string {
	var errs []string

	if strings.TrimSpace(c.ClientName) == "" {
		errs = append(errs, ErrMsgClientName)
	}
	if strings.TrimSpace(c.ClientAddress) == "" {
		errs = append(errs, ErrMsgClientAddress)
	}
	if !IsValidContractType(c.ContractType) {
		errs = append(errs, ErrMsgContractType)
	}

	return errs
}
