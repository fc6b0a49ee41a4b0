package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/sjperalta/fintera-invest/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/projection_report.html"))

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

type reportRow struct {
	Year      int
	Breakeven bool
	Cells     []string
}

type reportData struct {
	Title            string
	RunID            string
	Currency         models.Currency
	PropertyPrice    string
	DownPayment      string
	LoanAmount       string
	EMI              string
	HoldingYears     int
	Breakeven        bool
	Message          string
	TotalContributed string
	FinalNetProfit   string
	BankGain         string
	Winner           string
	Columns          []string
	Rows             []reportRow
	Caption          string
}

// RenderHTML renders the projection report as a standalone HTML page
func (s *ReportService) RenderHTML(ctx context.Context, resp *models.ProjectionResponse) ([]byte, error) {
	money := func(v int64) string { return FormatMoney(v, resp.Currency) }
	price, err := models.RoundAmount(resp.Parameters.PropertyPrice)
	if err != nil {
		return nil, err
	}

	data := reportData{
		Title:            reportTitle,
		RunID:            resp.RunID,
		Currency:         resp.Currency,
		PropertyPrice:    money(price),
		DownPayment:      money(resp.Derived.DownPayment),
		LoanAmount:       money(resp.Derived.LoanAmount),
		EMI:              money(resp.Derived.EMI),
		HoldingYears:     resp.Parameters.HoldingYears,
		Breakeven:        resp.BreakevenYear != nil,
		Message:          resp.Message,
		TotalContributed: money(resp.Summary.TotalContributed),
		FinalNetProfit:   money(resp.Summary.FinalNetProfit),
		BankGain:         money(resp.Summary.BankGainWithCashflows),
		Winner:           capitalize(resp.Summary.Winner),
		Columns:          models.YearColumns,
		Rows:             make([]reportRow, 0, len(resp.Years)),
		Caption:          models.Caption,
	}

	for _, row := range resp.Years {
		cells := make([]string, 0, len(models.YearColumns)-1)
		for _, amount := range row.Amounts() {
			cells = append(cells, FormatAmount(amount, resp.Currency))
		}
		data.Rows = append(data.Rows, reportRow{
			Year:      row.Year,
			Breakeven: resp.BreakevenYear != nil && *resp.BreakevenYear == row.Year,
			Cells:     cells,
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// GeneratePDF renders the HTML report through wkhtmltopdf. The binary must
// be installed on the host.
func (s *ReportService) GeneratePDF(ctx context.Context, resp *models.ProjectionResponse) ([]byte, error) {
	html, err := s.RenderHTML(ctx, resp)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer().Bytes(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
