package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contractgen/model"
	"contractgen/service"
)

// GenerateContractRequest is the payload for POST /generate-contract.
type GenerateContractRequest struct {
	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ContractType  string `json:"contractType"`
}

type ContractHandler struct {
	contracts *service.ContractService
}

func NewContractHandler(contracts *service.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// Generate handles POST /generate-contract
func (h *ContractHandler) Generate(c *gin.Context) {
	var req GenerateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Client name, address, and contract type are required",
		})
		return
	}

	contract, _, err := h.contracts.Create(c.Request.Context(), req.ClientName, req.ClientAddress, req.ContractType)
	if err != nil {
		respondServiceError(c, err, "Internal server error while generating contract")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Contract generated successfully",
		"data":    contract,
	})
}

// List handles GET /contracts
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contracts.List()
	if err != nil {
		respondServiceError(c, err, "Internal server error while reading contracts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contracts,
		"count":   len(contracts),
	})
}

// Get handles GET /contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contracts.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Internal server error while reading contract")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contract,
	})
}

// Update handles PUT /contracts/:id
func (h *ContractHandler) Update(c *gin.Context) {
	var patch model.ContractPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err, "Internal server error while updating contract")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contract updated successfully",
		"data":    contract,
	})
}

// Delete handles DELETE /contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.contracts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Internal server error while deleting contract")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contract deleted successfully",
	})
}

// Types handles GET /contract-types. The enumeration lives in model; serving
// it keeps the client form options in sync with server-side validation.
func (h *ContractHandler) Types(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    model.ContractTypes,
	})
}

// respondServiceError maps a service error to the API envelope. Unknown
// errors get the handler-specific internal message and no detail.
func respondServiceError(c *gin.Context, err error, internalMessage string) {
	if svcErr, ok := service.AsServiceError(err); ok {
		switch svcErr.Code {
		case service.ErrorInvalidInput:
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": svcErr.Message,
			})
			return
		case service.ErrorNotFound:
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": svcErr.Message,
			})
			return
		case service.ErrorValidationFailed:
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": svcErr.Message,
				"errors":  svcErr.Errors,
			})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": internalMessage,
	})
}
