package report

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

const timestampLayout = "20060102_150405"

// Report describes a generated artifact pair and its summary totals.
type Report struct {
	CSVFilename   string
	ChartFilename string
	GeneratedAt   time.Time
	TotalSales    int
	TotalOrders   int
	Days          int
}

// Builder renders sales reports into a shared artifact directory. Each
// Build call is independent; artifacts are immutable once written and
// cleaned up externally, not by this service.
type Builder struct {
	dir       string
	gen       *Generator
	now       func() time.Time
	newSuffix func() string
}

type BuilderOption func(*Builder)

// WithClock replaces the timestamp source, for deterministic filenames.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) { b.now = now }
}

// WithSuffix replaces the filename uniqueness token source.
func WithSuffix(fn func() string) BuilderOption {
	return func(b *Builder) { b.newSuffix = fn }
}

func NewBuilder(dir string, gen *Generator, opts ...BuilderOption) *Builder {
	b := &Builder{
		dir:       dir,
		gen:       gen,
		now:       time.Now,
		newSuffix: randomSuffix,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build generates the sales series for the range token ("7d" selects a
// week, anything else a month — the HTTP layer constrains the token),
// writes the CSV and chart artifacts, and returns their filenames with
// the summary totals.
func (b *Builder) Build(rangeToken string) (*Report, error) {
	days := 30
	if rangeToken == "7d" {
		days = 7
	}

	points := b.gen.Generate(days)

	now := b.now()
	stamp := now.Format(timestampLayout)
	suffix := b.newSuffix()
	csvName := fmt.Sprintf("sales_report_%s_%s_%s.csv", rangeToken, stamp, suffix)
	chartName := fmt.Sprintf("sales_chart_%s_%s_%s.png", rangeToken, stamp, suffix)

	csvPath := filepath.Join(b.dir, csvName)
	if err := writeCSV(points, csvPath); err != nil {
		return nil, fmt.Errorf("write csv artifact: %w", err)
	}

	if err := writeChart(points, filepath.Join(b.dir, chartName)); err != nil {
		_ = os.Remove(csvPath)
		return nil, fmt.Errorf("render chart artifact: %w", err)
	}

	totalSales, totalOrders := 0, 0
	for _, p := range points {
		totalSales += p.Sales
		totalOrders += p.Orders
	}

	log.Info().
		Str("csv", csvName).
		Str("chart", chartName).
		Int("days", days).
		Msg("report: artifacts generated")

	return &Report{
		CSVFilename:   csvName,
		ChartFilename: chartName,
		GeneratedAt:   now,
		TotalSales:    totalSales,
		TotalOrders:   totalOrders,
		Days:          days,
	}, nil
}

// randomSuffix returns a short random token that keeps two reports
// generated within the same second for the same range from colliding.
func randomSuffix() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("%08x", uint32(time.Now().UnixNano()))
	}
	return hex.EncodeToString(id.Bytes()[:4])
}
