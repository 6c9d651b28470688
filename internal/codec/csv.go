package codec

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/crucial707/inventory-tracker/internal/fsutil"
	"github.com/crucial707/inventory-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// CSVFields is the fixed column order of a delimited inventory line.
var CSVFields = []string{"id", "name", "quantity", "price", "userId"}

// DecodeCSV reads one item per line. Lines with fewer than five fields,
// blank lines and lines with broken quoting are skipped and reported as
// warnings; fields past the fifth are ignored. A
// number that fails to parse aborts the whole decode.
func DecodeCSV(path string) ([]models.Item, []models.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items := []models.Item{}
	var warnings []models.Warning
	err = ReadLines(f, func(line int, rec []string, err error) error {
		if err != nil {
			warnings = append(warnings, models.Warning{Line: line, Reason: fmt.Sprintf("malformed quoting: %v", err)})
			return nil
		}
		if len(rec) < len(CSVFields) {
			warnings = append(warnings, models.Warning{
				Line:   line,
				Reason: fmt.Sprintf("expected %d values (%s), got %d", len(CSVFields), strings.Join(CSVFields, ", "), len(rec)),
			})
			return nil
		}

		it, err := parseRecord(rec)
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrMalformed, path, line, err)
		}
		items = append(items, it)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return items, warnings, nil
}

func parseRecord(rec []string) (models.Item, error) {
	var it models.Item
	ints := []struct {
		field string
		raw   string
		dst   *int
	}{
		{"id", rec[0], &it.ID},
		{"quantity", rec[2], &it.Quantity},
		{"userId", rec[4], &it.LastModifiedBy},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return models.Item{}, fmt.Errorf("%s %q is not an integer", f.field, f.raw)
		}
		*f.dst = n
	}

	price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
	if err != nil {
		return models.Item{}, fmt.Errorf("price %q is not a number", rec[3])
	}
	it.Price = price
	it.Name = rec[1]
	return it, nil
}

// EncodeCSV overwrites path with one line per item, in store order, without
// a header.
func EncodeCSV(path string, items []models.Item) error {
	err := fsutil.WriteFile(path, func(f *os.File) error {
		cw := csv.NewWriter(f)
		for _, it := range items {
			rec := []string{
				strconv.Itoa(it.ID),
				it.Name,
				strconv.Itoa(it.Quantity),
				it.Price.String(),
				strconv.Itoa(it.LastModifiedBy),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
