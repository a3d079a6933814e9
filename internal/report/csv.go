package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"date", "sales", "orders", "avg_order_value", "day_of_week", "cumulative_sales"}

// writeCSV writes one row per sales point plus two derived columns: the
// English weekday name and the running sales total in date order. A
// partially written file is removed on failure.
func writeCSV(points []SalesPoint, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	cumulative := 0
	for _, p := range points {
		cumulative += p.Sales
		record := []string{
			p.Date.Format(dateLayout),
			strconv.Itoa(p.Sales),
			strconv.Itoa(p.Orders),
			strconv.FormatFloat(p.AvgOrderValue, 'f', 2, 64),
			p.Date.Weekday().String(),
			strconv.Itoa(cumulative),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
