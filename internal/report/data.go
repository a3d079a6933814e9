package report

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	baseSales    = 1000
	weekendBoost = 1.5

	salesFactorMin = 0.7
	salesFactorMax = 1.3

	orderValueMin = 40.0
	orderValueMax = 60.0
)

// SalesPoint is one calendar day of sales activity.
type SalesPoint struct {
	Date          time.Time
	Sales         int
	Orders        int
	AvgOrderValue float64
}

// Generator produces a randomized daily sales series shaped like real
// storefront traffic: a fixed base volume, a weekend boost, and order
// values drawn between 40 and 60.
type Generator struct {
	mu  sync.Mutex // guards rng; one generator serves all requests
	rng *rand.Rand
	now func() time.Time
}

type GeneratorOption func(*Generator)

// WithRand replaces the randomness source, for reproducible series.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rng = rng }
}

// WithNow replaces the clock, for tests that pin the series end date.
func WithNow(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns exactly days points, one per calendar day, oldest
// first, ending today.
func (g *Generator) Generate(days int) []SalesPoint {
	points := make([]SalesPoint, 0, days)
	start := g.now().AddDate(0, 0, -(days - 1))

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		boost := 1.0
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			boost = weekendBoost
		}

		sales := int(baseSales * boost * g.uniform(salesFactorMin, salesFactorMax))
		orders := int(float64(sales) / g.uniform(orderValueMin, orderValueMax))

		avg := 0.0
		if orders > 0 {
			avg = math.Round(float64(sales)/float64(orders)*100) / 100
		}

		points = append(points, SalesPoint{
			Date:          date,
			Sales:         sales,
			Orders:        orders,
			AvgOrderValue: avg,
		})
	}

	return points
}

// uniform serializes draws from the shared rand source. *rand.Rand is
// not safe for concurrent use.
func (g *Generator) uniform(lo, hi float64) float64 {
	g.mu.Lock()
	f := g.rng.Float64()
	g.mu.Unlock()
	return lo + f*(hi-lo)
}
