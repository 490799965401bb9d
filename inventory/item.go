// Package inventory holds the item model shared by the backend and the
// dashboard, plus the pure computations over it (summary, report, rows).
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every monetary figure shown to the user.
const CurrencySymbol = "R$"

// Item is a single inventory record as exchanged with the API.
// Total is computed by the server as Quantity * Value and trusted as-is.
type Item struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ItemType  string  `json:"item_type"`
	Quantity  int     `json:"quantity"`
	Value     float64 `json:"value"`
	Total     float64 `json:"total"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// Draft carries the editable fields of an item, for create and update calls.
type Draft struct {
	Name     string  `json:"name"`
	ItemType string  `json:"item_type"`
	Quantity int     `json:"quantity"`
	Value    float64 `json:"value"`
}

// LineTotal returns quantity * value rounded to cents.
func LineTotal(quantity int, value float64) float64 {
	return decimal.NewFromFloat(value).Mul(decimal.NewFromInt(int64(quantity))).Round(2).InexactFloat64()
}

// Summary is the pair of aggregate figures shown above the item table.
type Summary struct {
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// Summarize sums quantities and totals over items.
func Summarize(items []Item) Summary {
	s := Summary{TotalValue: decimal.Zero}
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		s.TotalValue = s.TotalValue.Add(decimal.NewFromFloat(it.Total))
	}
	return s
}

// FormattedValue renders TotalValue the way the dashboard displays money.
func (s Summary) FormattedValue() string {
	return CurrencySymbol + " " + s.TotalValue.StringFixed(2)
}

// FormatMoney renders v with two decimals and the currency prefix.
func FormatMoney(v float64) string {
	return CurrencySymbol + " " + decimal.NewFromFloat(v).StringFixed(2)
}

// TypeSummary aggregates the items of one item_type.
type TypeSummary struct {
	Quantity   int     `json:"quantity"`
	TotalValue float64 `json:"total_value"`
	Items      int     `json:"items"`
}

// Report is the breakdown served by /api/reports/summary.
type Report struct {
	TotalValue      float64                `json:"total_value"`
	TotalQuantity   int                    `json:"total_quantity"`
	TotalItemsCount int                    `json:"total_items_count"`
	Types           map[string]TypeSummary `json:"types"`
}

// BuildReport groups items by ItemType. Values are computed from quantity and
// unit value rather than the stored total.
func BuildReport(items []Item) Report {
	r := Report{TotalItemsCount: len(items), Types: make(map[string]TypeSummary)}
	total := decimal.Zero
	perType := make(map[string]decimal.Decimal)
	for _, it := range items {
		line := decimal.NewFromFloat(it.Value).Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		r.TotalQuantity += it.Quantity

		ts := r.Types[it.ItemType]
		ts.Quantity += it.Quantity
		ts.Items++
		r.Types[it.ItemType] = ts
		perType[it.ItemType] = perType[it.ItemType].Add(line)
	}
	for name, v := range perType {
		ts := r.Types[name]
		ts.TotalValue = v.Round(2).InexactFloat64()
		r.Types[name] = ts
	}
	r.TotalValue = total.Round(2).InexactFloat64()
	return r
}

// TypeNames returns the report's item types in alphabetical order.
func (r Report) TypeNames() []string {
	names := make([]string, 0, len(r.Types))
	for name := range r.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Row is the display model of one table row.
type Row struct {
	ID        int64
	Name      string
	ItemType  string
	Quantity  int
	UnitValue string
	Total     string
}

// Rows builds one Row per item, preserving order.
func Rows(items []Item) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ID:        it.ID,
			Name:      it.Name,
			ItemType:  it.ItemType,
			Quantity:  it.Quantity,
			UnitValue: FormatMoney(it.Value),
			Total:     FormatMoney(it.Total),
		})
	}
	return rows
}
