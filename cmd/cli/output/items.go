package output

import (
	"io"

	"github.com/crucial707/inventory-tracker/internal/models"
)

var itemHeaders = []string{"ID", "Name", "Quantity", "Price", "User ID"}

// RenderItems prints items as a table.
func RenderItems(w io.Writer, items []models.Item) {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{it.ID, it.Name, it.Quantity, it.Price.String(), it.LastModifiedBy})
	}
	RenderTable(w, itemHeaders, rows)
}
