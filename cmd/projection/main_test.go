package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/fintera-invest/internal/config"
	"github.com/sjperalta/fintera-invest/internal/models"
	"github.com/sjperalta/fintera-invest/internal/projection"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:     "test",
		StoragePath:     t.TempDir(),
		WorkerCount:     1,
		CacheTTLMinutes: 1,
		MaxSweepRuns:    10,
		MaxHoldingYears: 100,
		MaxLoanYears:    50,
		DefaultCurrency: models.CurrencyINR,
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg := testConfig(t)
	opts, err := parseArgs(nil, &bytes.Buffer{}, cfg)
	require.NoError(t, err)

	assert.Equal(t, projection.DefaultParameters(), opts.params)
	assert.Equal(t, models.CurrencyINR, opts.currency)
	assert.Equal(t, formatTable, opts.format)
	assert.Equal(t, cfg.StoragePath, opts.outDir)
}

func TestParseArgs_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("property_price: 5000000\nholding_years: 15\n"), 0644))

	opts, err := parseArgs([]string{"-config", path, "-holding-years", "12", "-down-payment-pct", "40"}, &bytes.Buffer{}, testConfig(t))
	require.NoError(t, err)

	assert.Equal(t, 5_000_000.0, opts.params.PropertyPrice, "from file")
	assert.Equal(t, 12, opts.params.HoldingYears, "flag wins over file")
	assert.Equal(t, 40.0, opts.params.DownPaymentPct)
	assert.Equal(t, 9.0, opts.params.LoanInterestPct, "default kept")
}

func TestParseArgs_Errors(t *testing.T) {
	badYAML := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("holding_years: [1, 2"), 0644))

	tests := []struct {
		name string
		args []string
	}{
		{"fractional years", []string{"-loan-years", "12.5"}},
		{"unknown flag", []string{"-tax-rate", "3"}},
		{"unsupported format", []string{"-format", "docx"}},
		{"stray argument", []string{"extra"}},
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}},
		{"malformed file", []string{"-config", badYAML}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args, &bytes.Buffer{}, testConfig(t))
			assert.Error(t, err)
		})
	}
}

func TestRun_Table(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-holding-years", "3"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Net Profit (if sold)")
	assert.Contains(t, out, "1,05,00,000", "year 1 property value in Indian grouping")
	assert.Contains(t, out, "Breakeven achieved in year 2!")
	assert.Contains(t, out, models.Caption)
}

func TestRun_JSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "json", "-currency", "usd", "-down-payment-pct", "100"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var resp models.ProjectionResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "USD", resp.Currency.Code)
	assert.Equal(t, int64(0), resp.Derived.LoanAmount)
	require.NotNil(t, resp.BreakevenYear)
	assert.Equal(t, 1, *resp.BreakevenYear)
	assert.Equal(t, int64(590000), resp.Years[0].NetProfit)
}

func TestRun_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"-format", "csv", "-out", dir}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	path := strings.TrimSpace(stdout.String())
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "projection_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Net Profit (if sold)")
}

func TestRun_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"out of range", []string{"-down-payment-pct", "150"}},
		{"over limit", []string{"-holding-years", "1000"}},
		{"unknown currency", []string{"-currency", "GBP"}},
		{"amounts beyond range", []string{"-property-appreciation-pct", "100", "-holding-years", "100"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, exitUsage, run(tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
			assert.Empty(t, stdout.String())
		})
	}
}

func TestFlagNames(t *testing.T) {
	for _, field := range projection.Fields() {
		assert.Equal(t, field, fieldName(flagName(field)))
		assert.NotContains(t, flagName(field), "_")
	}
}
