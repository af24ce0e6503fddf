package institution

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListInstitutionsOutput represents the institution catalogue.
type ListInstitutionsOutput struct {
	Institutions []*entity.Institution
}

// ListInstitutionsUseCase lists the institution catalogue.
type ListInstitutionsUseCase struct {
	institutionRepo adapter.InstitutionRepository
}

// NewListInstitutionsUseCase creates a new ListInstitutionsUseCase instance.
func NewListInstitutionsUseCase(institutionRepo adapter.InstitutionRepository) *ListInstitutionsUseCase {
	return &ListInstitutionsUseCase{institutionRepo: institutionRepo}
}

// Execute returns every institution ordered by name.
func (uc *ListInstitutionsUseCase) Execute(ctx context.Context) (*ListInstitutionsOutput, error) {
	institutions, err := uc.institutionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list institutions: %w", err)
	}
	return &ListInstitutionsOutput{Institutions: institutions}, nil
}
