package statement

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// CloseStatementsInput selects the card to close. A nil ProductID closes the due
// statements of every card; UserID is then ignored. A zero AsOf means today.
type CloseStatementsInput struct {
	UserID    uuid.UUID
	ProductID *uuid.UUID
	AsOf      time.Time
}

// CloseStatementsOutput lists the statements that were closed and the cards whose
// unit of work failed.
type CloseStatementsOutput struct {
	Closed      []*entity.Statement
	FailedCards []uuid.UUID
}

// CloseStatementsUseCase closes statements whose closing date has passed.
type CloseStatementsUseCase struct {
	uow         adapter.UnitOfWork
	engine      *ledger.Engine
	publisher   adapter.EventPublisher
	concurrency int
}

// NewCloseStatementsUseCase creates a new CloseStatementsUseCase instance. Up to
// concurrency cards are processed at once.
func NewCloseStatementsUseCase(uow adapter.UnitOfWork, engine *ledger.Engine, publisher adapter.EventPublisher, concurrency int) *CloseStatementsUseCase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CloseStatementsUseCase{
		uow:         uow,
		engine:      engine,
		publisher:   publisher,
		concurrency: concurrency,
	}
}

// Execute closes due statements, one unit of work per card.
func (uc *CloseStatementsUseCase) Execute(ctx context.Context, input CloseStatementsInput) (*CloseStatementsOutput, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = uc.engine.Today()
	}

	if input.ProductID != nil {
		closed, err := uc.closeCard(ctx, &input.UserID, *input.ProductID, asOf)
		if err != nil {
			return nil, err
		}
		ledger.PublishEvents(ctx, uc.publisher, closedEvents(closed)...)
		return &CloseStatementsOutput{Closed: closed}, nil
	}

	cards, err := uc.uow.Repositories().Products.FindCardsWithBillingCycle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	var (
		mu     sync.Mutex
		output = &CloseStatementsOutput{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)
	for _, card := range cards {
		card := card
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			closed, err := uc.closeCard(gctx, nil, card.ID, asOf)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Error("Failed to close statements", "productID", card.ID, "error", err)
				output.FailedCards = append(output.FailedCards, card.ID)
				return nil
			}
			output.Closed = append(output.Closed, closed...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Statement close run finished",
		"asOf", asOf.Format("2006-01-02"),
		"cards", len(cards),
		"closed", len(output.Closed),
		"failed", len(output.FailedCards),
	)
	ledger.PublishEvents(ctx, uc.publisher, closedEvents(output.Closed)...)
	return output, nil
}

// closeCard runs one card's roll-forward. A non-nil userID restricts the card to
// that user.
func (uc *CloseStatementsUseCase) closeCard(ctx context.Context, userID *uuid.UUID, productID uuid.UUID, asOf time.Time) ([]*entity.Statement, error) {
	var closed []*entity.Statement
	err := uc.uow.Do(ctx, func(ctx context.Context, repos adapter.Repositories) error {
		var (
			card *entity.Product
			err  error
		)
		if userID != nil {
			card, err = uc.engine.LoadCard(ctx, repos, *userID, productID)
		} else {
			card, err = repos.Products.FindByID(ctx, productID)
		}
		if err != nil {
			return err
		}
		closed, err = uc.engine.CloseDue(ctx, repos, card, asOf)
		return err
	})
	return closed, err
}
