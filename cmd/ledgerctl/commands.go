package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/usecase/bill"
	"github.com/finance-tracker/ledger/internal/application/usecase/exchangerate"
	"github.com/finance-tracker/ledger/internal/application/usecase/institution"
	"github.com/finance-tracker/ledger/internal/application/usecase/statement"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/infra/db"
)

const dateLayout = "2006-01-02"

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

// failErr reports err with its domain code when it has one.
func failErr(action string, err error) subcommands.ExitStatus {
	if code := domainerror.CodeOf(err); code != "" {
		return fail("%s: %s (%s)", action, domainerror.MessageOf(err), code)
	}
	return fail("%s: %v", action, err)
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "bring the database schema up to date" }
func (*migrateCmd) Usage() string {
	return `migrate

  Applies the embedded migrations to the database named by DATABASE_URL.
`
}
func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := config.Load()
	database, err := db.Open(&cfg.Database)
	if err != nil {
		return failErr("connect", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return failErr("migrate", err)
	}
	fmt.Println("schema is up to date")
	return subcommands.ExitSuccess
}

type setRateCmd struct {
	from      string
	to        string
	rate      string
	effective string
}

func (*setRateCmd) Name() string     { return "set-rate" }
func (*setRateCmd) Synopsis() string { return "store a directional exchange rate" }
func (*setRateCmd) Usage() string {
	return `set-rate -from <currency> -to <currency> -rate <decimal> [-effective <date>]

  Stores the rate converting one unit of -from into -to. Only that direction is
  used; store the inverse separately if needed.
`
}

func (c *setRateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source currency, 3-letter code (required)")
	f.StringVar(&c.to, "to", "", "target currency, 3-letter code (required)")
	f.StringVar(&c.rate, "rate", "", "units of -to per unit of -from (required)")
	f.StringVar(&c.effective, "effective", "", "effective date YYYY-MM-DD, default now")
}

func (c *setRateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.rate == "" {
		fmt.Fprintln(os.Stderr, "Error: -from, -to and -rate are required.")
		return subcommands.ExitUsageError
	}
	value, err := decimal.NewFromString(c.rate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing rate %q: %v\n", c.rate, err)
		return subcommands.ExitUsageError
	}
	var effective time.Time
	if c.effective != "" {
		effective, err = time.Parse(dateLayout, c.effective)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.effective, err)
			return subcommands.ExitUsageError
		}
	}

	injector, closeFn, err := openLedger()
	if err != nil {
		return failErr("open ledger", err)
	}
	defer closeFn()

	rate, err := injector.UseCases.SetRate.Execute(ctx, exchangerate.SetRateInput{
		From:        c.from,
		To:          c.to,
		Rate:        value,
		EffectiveAt: effective,
	})
	if err != nil {
		return failErr("set rate", err)
	}
	fmt.Printf("%s -> %s = %s (effective %s)\n", rate.FromCurrency, rate.ToCurrency, rate.Rate.String(), rate.EffectiveAt.Format(time.RFC3339))
	return subcommands.ExitSuccess
}

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "list stored exchange rates" }
func (*ratesCmd) Usage() string {
	return `rates

  Lists every stored rate, newest first.
`
}
func (*ratesCmd) SetFlags(*flag.FlagSet) {}

func (*ratesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	injector, closeFn, err := openLedger()
	if err != nil {
		return failErr("open ledger", err)
	}
	defer closeFn()

	rates, err := injector.UseCases.ListRates.Execute(ctx)
	if err != nil {
		return failErr("list rates", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tRATE\tEFFECTIVE")
	for _, r := range rates {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.FromCurrency, r.ToCurrency, r.Rate.String(), r.EffectiveAt.Format(time.RFC3339))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

type addInstitutionCmd struct {
	name       string
	types      string
	currencies string
}

func (*addInstitutionCmd) Name() string     { return "add-institution" }
func (*addInstitutionCmd) Synopsis() string { return "register a bank or card issuer" }
func (*addInstitutionCmd) Usage() string {
	return `add-institution -name <name> [-types CREDIT_CARD,CHECKING_ACCOUNT] [-currencies ARS,USD]

  Registers an institution. Empty lists allow every product type or currency.
`
}

func (c *addInstitutionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "institution name (required)")
	f.StringVar(&c.types, "types", "", "comma separated product types the institution offers")
	f.StringVar(&c.currencies, "currencies", "", "comma separated currencies the institution supports")
}

func (c *addInstitutionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}

	input := institution.CreateInstitutionInput{
		Name:              c.name,
		AllowedCurrencies: splitList(c.currencies),
	}
	for _, t := range splitList(c.types) {
		input.AllowedProductTypes = append(input.AllowedProductTypes, entity.ProductType(strings.ToUpper(t)))
	}

	injector, closeFn, err := openLedger()
	if err != nil {
		return failErr("open ledger", err)
	}
	defer closeFn()

	output, err := injector.UseCases.CreateInstitution.Execute(ctx, input)
	if err != nil {
		return failErr("add institution", err)
	}
	fmt.Printf("institution %s registered with id %s\n", output.Institution.Name, output.Institution.ID)
	return subcommands.ExitSuccess
}

type closeStatementsCmd struct {
	asOf string
}

func (*closeStatementsCmd) Name() string     { return "close-statements" }
func (*closeStatementsCmd) Synopsis() string { return "close every statement whose closing date has passed" }
func (*closeStatementsCmd) Usage() string {
	return `close-statements [-as-of <date>]

  Closes, for every credit card, the statements whose closing date is before
  -as-of (default today) and opens the following period.
`
}

func (c *closeStatementsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asOf, "as-of", "", "reference date YYYY-MM-DD, default today")
}

func (c *closeStatementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var asOf time.Time
	if c.asOf != "" {
		var err error
		asOf, err = time.Parse(dateLayout, c.asOf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date %q: %v\n", c.asOf, err)
			return subcommands.ExitUsageError
		}
	}

	injector, closeFn, err := openLedger()
	if err != nil {
		return failErr("open ledger", err)
	}
	defer closeFn()

	output, err := injector.UseCases.CloseStatements.Execute(ctx, statement.CloseStatementsInput{AsOf: asOf})
	if err != nil {
		return failErr("close statements", err)
	}
	for _, s := range output.Closed {
		fmt.Printf("closed statement %s of product %s (closing %s, total %s)\n",
			s.ID, s.ProductID, s.ClosingDate.Format(dateLayout), s.TotalAmount.String())
	}
	fmt.Printf("%d statements closed\n", len(output.Closed))
	if len(output.FailedCards) > 0 {
		return fail("%d cards failed: %v", len(output.FailedCards), output.FailedCards)
	}
	return subcommands.ExitSuccess
}

type generateBillsCmd struct {
	period string
}

func (*generateBillsCmd) Name() string     { return "generate-bills" }
func (*generateBillsCmd) Synopsis() string { return "generate the bills of a month for every user" }
func (*generateBillsCmd) Usage() string {
	return `generate-bills [-period YYYY-MM]

  Creates the missing bills of every active service for -period (default the
  current month). Running it again for the same month creates nothing new.
`
}

func (c *generateBillsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "billing month YYYY-MM, default the current month")
}

func (c *generateBillsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period := time.Now()
	if c.period != "" {
		var err error
		period, err = time.Parse("2006-01", c.period)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing period %q: %v\n", c.period, err)
			return subcommands.ExitUsageError
		}
	}

	injector, closeFn, err := openLedger()
	if err != nil {
		return failErr("open ledger", err)
	}
	defer closeFn()

	output, err := injector.UseCases.GenerateAllBills.Execute(ctx, bill.GenerateAllBillsInput{
		Year:  period.Year(),
		Month: int(period.Month()),
	})
	if err != nil {
		return failErr("generate bills", err)
	}
	fmt.Printf("%d bills created for %s\n", len(output.Created), period.Format("2006-01"))
	if len(output.FailedUsers) > 0 {
		return fail("%d users failed: %v", len(output.FailedUsers), output.FailedUsers)
	}
	return subcommands.ExitSuccess
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
