// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/bill"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/exchangerate"
	"github.com/finance-tracker/ledger/internal/application/usecase/institution"
	"github.com/finance-tracker/ledger/internal/application/usecase/product"
	"github.com/finance-tracker/ledger/internal/application/usecase/statement"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/cache"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/messaging"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/scheduler"
)

// UseCases exposes the operator-facing use cases shared by the API process and the CLI.
type UseCases struct {
	SetRate           *exchangerate.SetRateUseCase
	ListRates         *exchangerate.ListRatesUseCase
	CreateInstitution *institution.CreateInstitutionUseCase
	CloseStatements   *statement.CloseStatementsUseCase
	GenerateAllBills  *bill.GenerateAllBillsUseCase
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Worker
	UseCases  UseCases

	closers []func() error
}

// NewInjector creates a new dependency injector with all dependencies wired.
// clock drives the ledger calendar; nil means time.Now.
func NewInjector(cfg *config.Config, database *db.Database, clock func() time.Time) (*Injector, error) {
	if clock == nil {
		clock = time.Now
	}
	inj := &Injector{Config: cfg, DB: database.DB()}

	// Create the unit of work and the ledger engine
	uow := persistence.NewUnitOfWork(database.DB(), cfg.Ledger.TxMaxAttempts, cfg.Ledger.TxBackoff)
	repos := uow.Repositories()
	engine := ledger.NewEngine(clock)

	// Optional Redis: rate cache and request rate limiter
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		client, err := NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		redisClient = client
		inj.closers = append(inj.closers, client.Close)
	}

	var rateCache adapter.RateCache
	if redisClient != nil {
		rateCache = cache.NewRateCache(redisClient)
	}
	rates := ledger.NewRateResolver(repos.Rates, rateCache, cfg.Redis.RateCacheTTL)

	publisher := inj.newPublisher(cfg.AMQP)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	// Create product use cases
	createProductUseCase := product.NewCreateProductUseCase(uow, engine)
	updateProductUseCase := product.NewUpdateProductUseCase(uow, engine)
	deleteProductUseCase := product.NewDeleteProductUseCase(uow, engine)
	getProductUseCase := product.NewGetProductUseCase(uow, engine, rates)
	listProductsUseCase := product.NewListProductsUseCase(uow, rates)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(uow)
	recordIncomeUseCase := transaction.NewRecordIncomeUseCase(uow, engine, publisher)
	recordExpenseUseCase := transaction.NewRecordExpenseUseCase(uow, engine, publisher)
	recordTransferUseCase := transaction.NewRecordTransferUseCase(uow, engine, rates, publisher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(uow, engine, publisher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(uow, engine, publisher)

	// Create statement use cases
	currentStatementUseCase := statement.NewGetCurrentStatementUseCase(uow, engine, publisher)
	listStatementsUseCase := statement.NewListStatementsUseCase(uow, engine, publisher)
	getStatementUseCase := statement.NewGetStatementUseCase(uow, engine)
	closeStatementsUseCase := statement.NewCloseStatementsUseCase(uow, engine, publisher, cfg.Ledger.Concurrency)
	addAdjustmentUseCase := statement.NewAddAdjustmentUseCase(uow, engine)
	removeAdjustmentUseCase := statement.NewRemoveAdjustmentUseCase(uow, engine)
	payStatementUseCase := statement.NewPayStatementUseCase(uow, engine, rates, publisher)

	// Create recurring bill use cases
	generateBillsUseCase := bill.NewGenerateBillsUseCase(uow, engine, publisher)
	billUseCases := controller.BillUseCases{
		CreateService: bill.NewCreateServiceUseCase(uow, engine),
		UpdateService: bill.NewUpdateServiceUseCase(uow, engine),
		DeleteService: bill.NewDeleteServiceUseCase(uow, engine),
		ListServices:  bill.NewListServicesUseCase(uow),
		CreateRule:    bill.NewCreateRuleUseCase(uow, engine),
		DeleteRule:    bill.NewDeleteRuleUseCase(uow, engine),
		Generate:      generateBillsUseCase,
		List:          bill.NewListBillsUseCase(uow),
		Overdue:       bill.NewListOverdueBillsUseCase(uow),
		Pay:           bill.NewPayBillUseCase(uow, engine, rates, publisher),
		Link:          bill.NewLinkBillUseCase(uow, engine, publisher),
		Update:        bill.NewUpdateBillUseCase(uow, engine),
	}
	generateAllBillsUseCase := bill.NewGenerateAllBillsUseCase(uow, generateBillsUseCase, cfg.Ledger.Concurrency)

	// Create exchange rate, category and institution use cases
	setRateUseCase := exchangerate.NewSetRateUseCase(rates)
	latestRateUseCase := exchangerate.NewGetLatestRateUseCase(rates)
	listRatesUseCase := exchangerate.NewListRatesUseCase(rates)
	listCategoriesUseCase := category.NewListCategoriesUseCase(repos.Categories)
	createCategoryUseCase := category.NewCreateCategoryUseCase(repos.Categories)
	listInstitutionsUseCase := institution.NewListInstitutionsUseCase(repos.Institutions)
	createInstitutionUseCase := institution.NewCreateInstitutionUseCase(repos.Institutions)

	// Create controllers
	checks := map[string]controller.HealthCheck{
		"database": database.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(checks),
		Product: controller.NewProductController(
			createProductUseCase,
			updateProductUseCase,
			deleteProductUseCase,
			getProductUseCase,
			listProductsUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			recordIncomeUseCase,
			recordExpenseUseCase,
			recordTransferUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
		),
		Statement: controller.NewStatementController(
			currentStatementUseCase,
			listStatementsUseCase,
			getStatementUseCase,
			closeStatementsUseCase,
			addAdjustmentUseCase,
			removeAdjustmentUseCase,
			payStatementUseCase,
		),
		Bill: controller.NewBillController(billUseCases, clock),
		ExchangeRate: controller.NewExchangeRateController(
			setRateUseCase,
			latestRateUseCase,
			listRatesUseCase,
		),
		Category:    controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase),
		Institution: controller.NewInstitutionController(listInstitutionsUseCase),
	}

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.Ledger.RateLimit, cfg.Ledger.RateLimitWindow)
	}

	inj.Router = router.NewRouter(controllers, authMiddleware, rateLimiter)
	inj.Scheduler = scheduler.NewWorker(closeStatementsUseCase, generateAllBillsUseCase, scheduler.WorkerConfig{
		Interval: cfg.Ledger.SchedulerInterval,
		Clock:    clock,
	})
	inj.UseCases = UseCases{
		SetRate:           setRateUseCase,
		ListRates:         listRatesUseCase,
		CreateInstitution: createInstitutionUseCase,
		CloseStatements:   closeStatementsUseCase,
		GenerateAllBills:  generateAllBillsUseCase,
	}
	return inj, nil
}

// newPublisher connects to the broker when one is configured. A broker that cannot
// be reached degrades to the log publisher.
func (i *Injector) newPublisher(cfg config.AMQPConfig) adapter.EventPublisher {
	if cfg.URL == "" {
		return messaging.NewLogPublisher()
	}
	publisher, err := messaging.NewAMQPPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		slog.Warn("Event broker unavailable, logging events instead", "error", err)
		return messaging.NewLogPublisher()
	}
	i.closers = append(i.closers, publisher.Close)
	return publisher
}

// Close releases the broker and cache connections. The database is owned by the caller.
func (i *Injector) Close() error {
	var errs []error
	for _, closeFn := range i.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewRedisClient creates a client from the Redis settings and checks the connection.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}
