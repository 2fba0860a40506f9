package model

// Contract represents a persisted draft contract
type Contract struct {
	ID              string `json:"id"`
	ClientName      string `json:"clientName"`
	ClientAddress   string `json:"clientAddress"`
	ContractType    string `json:"contractType"`
	ContractContent string `json:"contractContent"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ContractPatch carries the updatable fields of a contract.
// Nil fields are left unchanged when the patch is applied.
type ContractPatch struct {
	ClientName      *string `json:"clientName"`
	ClientAddress   *string `json:"clientAddress"`
	ContractType    *string `json:"contractType"`
	ContractContent *string `json:"contractContent"`
}

// Supported contract types
const (
	TypeEmploymentAgreement = "Employment Agreement"
	TypeLoan                = "Loan"
	TypeServiceAgreement    = "Service Agreement"
)

// ContractTypes is the single definition of the contract type enumeration.
// It is served to the client so the form options stay in sync with validation.
var ContractTypes = []string{
	TypeEmploymentAgreement,
	TypeLoan,
	TypeServiceAgreement,
}

// IsValidContractType reports whether t is one of the supported contract types.
func IsValidContractType(t string) bool {
	for _, ct := range ContractTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// Apply returns a copy of c with the non-nil patch fields applied.
func (p ContractPatch) Apply(c Contract) Contract {
	if p.ClientName != nil {
		c.ClientName = *p.ClientName
	}
	if p.ClientAddress != nil {
		c.ClientAddress = *p.ClientAddress
	}
	if p.ContractType != nil {
		c.ContractType = *p.ContractType
	}
	if p.ContractContent != nil {
		c.ContractContent = *p.ContractContent
	}
	return c
}
