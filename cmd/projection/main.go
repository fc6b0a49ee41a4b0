// Command projection runs a single property-versus-bank projection from the
// command line and prints or exports the yearly table.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"

	"github.com/sjperalta/fintera-invest/internal/config"
	"github.com/sjperalta/fintera-invest/internal/jobs"
	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
	"github.com/sjperalta/fintera-invest/internal/repository"
	"github.com/sjperalta/fintera-invest/internal/services"
	"github.com/sjperalta/fintera-invest/internal/storage"
	"github.com/sjperalta/fintera-invest/pkg/logger"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	params   projection.Parameters
	currency string
	format   string
	outDir   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return exitError
	}
	logger.SetupWriter(cfg.Environment, stderr)

	opts, err := parseArgs(args, stderr, cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	svcs := services.NewServices(repository.NewRepositories(nil), worker, cfg)

	ctx := context.Background()
	currency, err := svcs.Projection.ResolveCurrency(opts.currency)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	}

	result, err := svcs.Projection.Run(ctx, opts.params)
	if err != nil {
		fmt.Fprintf(stderr, "projection failed: %v\n", err)
		var invalidErr *projection.InvalidParameterError
		if errors.As(err, &invalidErr) || errors.Is(err, services.ErrLimitExceeded) || errors.Is(err, projection.ErrOutOfRange) {
			return exitUsage
		}
		return exitError
	}
	resp, err := models.NewProjectionResponse(result.ID, result.Projection, currency)
	if err != nil {
		fmt.Fprintf(stderr, "projection failed: %v\n", err)
		return exitUsage
	}

	switch opts.format {
	case formatTable:
		err = printTable(stdout, &resp)
	case formatJSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(resp)
	default:
		err = export(ctx, svcs.Export, opts, &resp, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "output failed: %v\n", err)
		return exitError
	}
	return exitOK
}

// parseArgs builds the parameter set: defaults, then the YAML file, then
// any flag set explicitly on the command line
func parseArgs(args []string, stderr io.Writer, cfg *config.Config) (*options, error) {
	fs := flag.NewFlagSet("projection", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := projection.DefaultParameters()
	values := make(map[string]*float64, len(projection.Fields()))
	for _, field := range projection.Fields() {
		v, _ := defaults.Value(field)
		values[flagName(field)] = fs.Float64(flagName(field), v, strings.ReplaceAll(field, "_", " "))
	}

	configPath := fs.String("config", "", "YAML file with projection parameters")
	currency := fs.String("currency", cfg.DefaultCurrency, "display currency ("+strings.Join(models.SupportedCurrencies(), ", ")+")")
	format := fs.String("format", formatTable, "output format (table, json, csv, xlsx, pdf, report)")
	outDir := fs.String("out", cfg.StoragePath, "directory for file exports")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	params := defaults
	if *configPath != "" {
		loaded, err := loadParameters(*configPath, params)
		if err != nil {
			return nil, err
		}
		params = loaded
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		v, ok := values[f.Name]
		if !ok || flagErr != nil {
			return
		}
		params, flagErr = params.With(fieldName(f.Name), *v)
	})
	if flagErr != nil {
		return nil, flagErr
	}

	opts := &options{
		params:   params,
		currency: *currency,
		format:   strings.ToLower(*format),
		outDir:   *outDir,
	}
	if opts.format != formatTable && opts.format != formatJSON {
		if _, ok := services.ContentTypes[opts.format]; !ok {
			return nil, fmt.Errorf("%w: %q", services.ErrUnsupportedFormat, *format)
		}
	}
	return opts, nil
}

// loadParameters overlays a YAML parameter file on base. Keys missing from
// the file keep their base value.
func loadParameters(path string, base projection.Parameters) (projection.Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	params := base
	if err := yaml.Unmarshal(data, &params); err != nil {
		return base, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return params, nil
}

func export(ctx context.Context, exportSvc *services.ExportService, opts *options, resp *models.ProjectionResponse, stdout io.Writer) error {
	data, filename, err := exportSvc.Export(ctx, opts.format, resp)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(opts.outDir)
	if err != nil {
		return err
	}
	path, err := store.Save(data, filename)
	if err != nil {
		return err
	}

	logger.Info("Projection exported", "format", opts.format, "path", path, "bytes", len(data))
	fmt.Fprintln(stdout, path)
	return nil
}

func printTable(w io.Writer, resp *models.ProjectionResponse) error {
	money := func(v int64) string { return services.FormatMoney(v, resp.Currency) }

	fmt.Fprintf(w, "Down payment: %s  Loan: %s  EMI: %s/month over %d payments\n\n",
		money(resp.Derived.DownPayment), money(resp.Derived.LoanAmount), money(resp.Derived.EMI), resp.Derived.NumPayments)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(models.YearColumns, "\t")+"\t")
	for _, row := range resp.Years {
		cells := make([]string, 0, len(models.YearColumns))
		cells = append(cells, fmt.Sprintf("%d", row.Year))
		for _, amount := range row.Amounts() {
			cells = append(cells, services.FormatAmount(amount, resp.Currency))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", resp.Message)
	fmt.Fprintf(w, "Property net profit: %s  Bank/Bond with cashflows: %s  Winner: %s\n",
		money(resp.Summary.FinalNetProfit), money(resp.Summary.FinalBankValueWithCashflows), resp.Summary.Winner)
	fmt.Fprintf(w, "%s (%s)\n", resp.Caption, resp.Currency.Label)
	return nil
}

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func fieldName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
