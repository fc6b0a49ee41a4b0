package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/fintera-invest/internal/models"
)

// Export formats
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatPDF    = "pdf"
	FormatReport = "report"
)

const reportTitle = "Property Investment Projection"

// ContentTypes maps export formats to their MIME types
var ContentTypes = map[string]string{
	FormatCSV:    "text/csv",
	FormatXLSX:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:    "application/pdf",
	FormatReport: "application/pdf",
}

type ExportService struct {
	reportSvc *ReportService
}

func NewExportService(reportSvc *ReportService) *ExportService {
	return &ExportService{reportSvc: reportSvc}
}

// Export renders resp in the requested format
func (s *ExportService) Export(ctx context.Context, format string, resp *models.ProjectionResponse) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return s.ExportCSV(ctx, resp)
	case FormatXLSX:
		return s.ExportXLSX(ctx, resp)
	case FormatPDF:
		return s.ExportPDF(ctx, resp)
	case FormatReport:
		data, err := s.reportSvc.GeneratePDF(ctx, resp)
		if err != nil {
			return nil, "", err
		}
		return data, exportFilename(resp, "report", "pdf"), nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (s *ExportService) ExportCSV(ctx context.Context, resp *models.ProjectionResponse) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{reportTitle, resp.Currency.Label})
	_ = writer.Write(models.YearColumns)
	for _, row := range resp.Years {
		record := make([]string, 0, len(models.YearColumns))
		record = append(record, strconv.Itoa(row.Year))
		for _, amount := range row.Amounts() {
			record = append(record, strconv.FormatInt(amount, 10))
		}
		_ = writer.Write(record)
	}
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{resp.Message})
	_ = writer.Write([]string{models.Caption})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(resp, "projection", FormatCSV), nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, resp *models.ProjectionResponse) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Projection"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "center"},
	})
	amountStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0

	header := make([]interface{}, 0, len(models.YearColumns))
	for _, col := range models.YearColumns {
		header = append(header, col)
	}
	_ = f.SetSheetRow(sheet, "A1", &header)
	lastCol, _ := excelize.ColumnNumberToName(len(models.YearColumns))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", lastCol, 18)

	for i, row := range resp.Years {
		values := make([]interface{}, 0, len(models.YearColumns))
		values = append(values, row.Year)
		for _, amount := range row.Amounts() {
			values = append(values, amount)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, "", err
		}
	}
	if len(resp.Years) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(models.YearColumns), len(resp.Years)+1)
		_ = f.SetCellStyle(sheet, "B2", end, amountStyle)
	}

	footer := len(resp.Years) + 3
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", footer), resp.Message)
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", footer+1), models.Caption)
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", footer+2), "Currency: "+resp.Currency.Label)

	_ = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(resp, "projection", FormatXLSX), nil
}

func (s *ExportService) ExportPDF(ctx context.Context, resp *models.ProjectionResponse) ([]byte, string, error) {
	pdf := buildPDF(resp)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), exportFilename(resp, "projection", FormatPDF), nil
}

const (
	pdfBottomMargin  = 10.0
	pdfRowHeight     = 5.0
	pdfHeaderLine    = 3.0
	pdfHeaderPadding = 2.0
)

func buildPDF(resp *models.ProjectionResponse) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 10, 8)
	pdf.SetAutoPageBreak(true, pdfBottomMargin)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, reportTitle)
	pdf.Ln(9)

	// Core fonts have no rupee glyph, so amounts carry the currency code
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Amounts in %s. %s", resp.Currency.Code, resp.Message))
	pdf.Ln(8)

	pageWidth, pageHeight := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	yearWidth := 10.0
	colWidth := (pageWidth - left - right - yearWidth) / float64(len(models.YearColumns)-1)
	widths := make([]float64, len(models.YearColumns))
	for i := range widths {
		widths[i] = colWidth
	}
	widths[0] = yearWidth

	writePDFHeader(pdf, widths)

	pdf.SetFont("Arial", "", 6)
	for _, row := range resp.Years {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfBottomMargin {
			pdf.AddPage()
			writePDFHeader(pdf, widths)
			pdf.SetFont("Arial", "", 6)
		}
		pdf.CellFormat(yearWidth, pdfRowHeight, strconv.Itoa(row.Year), "1", 0, "C", false, 0, "")
		for _, amount := range row.Amounts() {
			pdf.CellFormat(colWidth, pdfRowHeight, FormatAmount(amount, resp.Currency), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, models.Caption)
	return pdf
}

// pdfHeaderHeight is the height of the header row once long labels wrap
func pdfHeaderHeight(pdf *gofpdf.Fpdf, widths []float64) float64 {
	lines := 1
	for i, col := range models.YearColumns {
		if n := len(pdf.SplitLines([]byte(col), widths[i]-2*pdf.GetCellMargin())); n > lines {
			lines = n
		}
	}
	return float64(lines)*pdfHeaderLine + pdfHeaderPadding
}

// writePDFHeader draws the column headers at the current position, wrapping
// labels inside their cells
func writePDFHeader(pdf *gofpdf.Fpdf, widths []float64) {
	pdf.SetFont("Arial", "B", 6)
	pdf.SetFillColor(224, 224, 224)

	height := pdfHeaderHeight(pdf, widths)
	x, y := pdf.GetXY()
	for i, col := range models.YearColumns {
		pdf.Rect(x, y, widths[i], height, "FD")
		lines := len(pdf.SplitLines([]byte(col), widths[i]-2*pdf.GetCellMargin()))
		pdf.SetXY(x, y+(height-float64(lines)*pdfHeaderLine)/2)
		pdf.MultiCell(widths[i], pdfHeaderLine, col, "", "C", false)
		x += widths[i]
	}
	left, _, _, _ := pdf.GetMargins()
	pdf.SetXY(left, y+height)
}

func exportFilename(resp *models.ProjectionResponse, prefix, ext string) string {
	id := resp.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "run"
	}
	return fmt.Sprintf("%s_%s.%s", prefix, id, ext)
}
