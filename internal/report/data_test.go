package report

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	// A Saturday, so short series still cover a weekend.
	return time.Date(2025, 4, 12, 15, 30, 0, 0, time.UTC)
}

func TestGenerator_Generate_SeriesShape(t *testing.T) {
	tests := []struct {
		name string
		days int
	}{
		{name: "single_day", days: 1},
		{name: "week", days: 7},
		{name: "month", days: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(WithRand(rand.New(rand.NewSource(1))), WithNow(fixedNow))

			points := gen.Generate(tt.days)
			require.Len(t, points, tt.days)

			// Dates increase by exactly one calendar day and end today.
			for i := 1; i < len(points); i++ {
				assert.Equal(t, points[i-1].Date.AddDate(0, 0, 1).Format(dateLayout), points[i].Date.Format(dateLayout))
			}
			assert.Equal(t, fixedNow().Format(dateLayout), points[len(points)-1].Date.Format(dateLayout))
		})
	}
}

func TestGenerator_Generate_ValueRanges(t *testing.T) {
	gen := NewGenerator(WithRand(rand.New(rand.NewSource(7))), WithNow(fixedNow))

	for _, p := range gen.Generate(30) {
		weekend := p.Date.Weekday() == time.Saturday || p.Date.Weekday() == time.Sunday

		low, high := 700, 1300
		if weekend {
			low, high = 1050, 1950
		}
		assert.GreaterOrEqual(t, p.Sales, low, "date %s", p.Date.Format(dateLayout))
		assert.LessOrEqual(t, p.Sales, high, "date %s", p.Date.Format(dateLayout))

		assert.GreaterOrEqual(t, p.Orders, 0)

		if p.Orders == 0 {
			assert.Zero(t, p.AvgOrderValue)
		} else {
			want := math.Round(float64(p.Sales)/float64(p.Orders)*100) / 100
			assert.Equal(t, want, p.AvgOrderValue)
		}
	}
}

func TestGenerator_Generate_ConcurrentUse(t *testing.T) {
	// One generator sits behind the report builder for every request;
	// drawing from it must be safe under concurrent calls (run with -race).
	gen := NewGenerator(WithNow(fixedNow))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				points := gen.Generate(7)
				assert.Len(t, points, 7)
			}
		}()
	}
	wg.Wait()
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	first := NewGenerator(WithRand(rand.New(rand.NewSource(99))), WithNow(fixedNow)).Generate(7)
	second := NewGenerator(WithRand(rand.New(rand.NewSource(99))), WithNow(fixedNow)).Generate(7)

	assert.Equal(t, first, second)
}
