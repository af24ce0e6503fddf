package dto

import (
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// InstitutionResponse represents an issuer of financial products.
type InstitutionResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	AllowedProductTypes []string `json:"allowed_product_types"`
	AllowedCurrencies   []string `json:"allowed_currencies"`
}

// InstitutionListResponse represents the response for listing institutions.
type InstitutionListResponse struct {
	Institutions []InstitutionResponse `json:"institutions"`
}

// ToInstitutionListResponse converts a slice of institutions.
func ToInstitutionListResponse(institutions []*entity.Institution) InstitutionListResponse {
	response := InstitutionListResponse{Institutions: make([]InstitutionResponse, 0, len(institutions))}
	for _, inst := range institutions {
		types := make([]string, 0, len(inst.AllowedProductTypes))
		for _, t := range inst.AllowedProductTypes {
			types = append(types, string(t))
		}
		response.Institutions = append(response.Institutions, InstitutionResponse{
			ID:                  inst.ID.String(),
			Name:                inst.Name,
			AllowedProductTypes: types,
			AllowedCurrencies:   append([]string{}, inst.AllowedCurrencies...),
		})
	}
	return response
}
