// Package codec reads and writes the inventory in its two file formats: a
// JSON document and headerless comma-delimited lines. Both formats carry the
// same fields in the same order.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/crucial707/inventory-tracker/internal/fsutil"
	"github.com/crucial707/inventory-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ErrMalformed wraps any content that cannot be decoded into items.
var ErrMalformed = errors.New("malformed inventory data")

// jsonItem is the document shape; price is written as a bare number.
type jsonItem struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
	UserID   int         `json:"userId"`
}

// DecodeJSON reads an array of items from path. A missing file yields an
// empty list.
func DecodeJSON(path string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []jsonItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	items := make([]models.Item, 0, len(raw))
	for i, r := range raw {
		price := decimal.Zero
		if r.Price != "" {
			price, err = decimal.NewFromString(r.Price.String())
			if err != nil {
				return nil, fmt.Errorf("%w: %s: item %d: price %q", ErrMalformed, path, i, r.Price)
			}
		}
		items = append(items, models.Item{
			ID:             r.ID,
			Name:           r.Name,
			Quantity:       r.Quantity,
			Price:          price,
			LastModifiedBy: r.UserID,
		})
	}
	return items, nil
}

// EncodeJSON overwrites path with items as an indented JSON array.
func EncodeJSON(path string, items []models.Item) error {
	err := fsutil.WriteFile(path, func(f *os.File) error {
		return WriteJSON(f, items)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteJSON writes items to w in the same indented document shape EncodeJSON
// stores on disk.
func WriteJSON(w io.Writer, items []models.Item) error {
	raw := make([]jsonItem, 0, len(items))
	for _, it := range items {
		raw = append(raw, jsonItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    json.Number(it.Price.String()),
			UserID:   it.LastModifiedBy,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}
