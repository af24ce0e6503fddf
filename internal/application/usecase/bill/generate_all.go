package bill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// GenerateAllBillsInput selects the period to generate bills for.
type GenerateAllBillsInput struct {
	Year  int
	Month int
}

// GenerateAllBillsOutput lists the bills created and the users whose run failed.
type GenerateAllBillsOutput struct {
	Created     []*entity.ServiceBill
	FailedUsers []uuid.UUID
}

// GenerateAllBillsUseCase generates the period's bills for every user with an
// active service, one unit of work per user.
type GenerateAllBillsUseCase struct {
	uow         adapter.UnitOfWork
	generate    *GenerateBillsUseCase
	concurrency int
}

// NewGenerateAllBillsUseCase creates a new GenerateAllBillsUseCase instance.
func NewGenerateAllBillsUseCase(uow adapter.UnitOfWork, generate *GenerateBillsUseCase, concurrency int) *GenerateAllBillsUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &GenerateAllBillsUseCase{uow: uow, generate: generate, concurrency: concurrency}
}

// Execute runs bill generation for every user. A failing user does not stop the others.
func (uc *GenerateAllBillsUseCase) Execute(ctx context.Context, input GenerateAllBillsInput) (*GenerateAllBillsOutput, error) {
	if err := ledger.ValidatePeriod(input.Year, input.Month); err != nil {
		return nil, err
	}

	userIDs, err := uc.uow.Repositories().Services.FindActiveUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with services: %w", err)
	}

	var (
		mu     sync.Mutex
		output = &GenerateAllBillsOutput{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := uc.generate.Execute(gctx, GenerateBillsInput{UserID: userID, Year: input.Year, Month: input.Month})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("Failed to generate bills", "userID", userID, "error", err)
				output.FailedUsers = append(output.FailedUsers, userID)
				return nil
			}
			output.Created = append(output.Created, result.Created...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return output, nil
}
