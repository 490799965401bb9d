package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/StellaShiina/inventory-ui/inventory"
)

// EmptyStateMessage is shown instead of the table when there are no items.
const EmptyStateMessage = "No products added yet"

var itemsTemplate = template.Must(template.New("items").Parse(`{{if not .}}<div class="empty-state">
  <div class="empty-state-icon">[ ]</div>
  <p>` + EmptyStateMessage + `</p>
</div>{{else}}<table>
  <thead>
    <tr><th>Name</th><th>Type</th><th>Qty</th><th>Unit value</th><th>Total</th><th>Actions</th></tr>
  </thead>
  <tbody>
{{- range .}}
    <tr data-id="{{.ID}}">
      <td><strong>{{.Name}}</strong></td>
      <td>{{.ItemType}}</td>
      <td>{{.Quantity}}</td>
      <td>{{.UnitValue}}</td>
      <td><strong>{{.Total}}</strong></td>
      <td>
        <div class="action-buttons">
          <button class="btn-edit" data-action="edit" data-id="{{.ID}}">Edit</button>
          <button class="btn-delete" data-action="delete" data-id="{{.ID}}">Delete</button>
        </div>
      </td>
    </tr>
{{- end}}
  </tbody>
</table>{{end}}`))

// ItemsHTML renders the item table fragment, or the empty-state placeholder.
func ItemsHTML(rows []inventory.Row) (string, error) {
	var buf bytes.Buffer
	if err := itemsTemplate.Execute(&buf, rows); err != nil {
		return "", fmt.Errorf("render items: %w", err)
	}
	return buf.String(), nil
}

// WriteItems writes rows as an aligned text table.
func WriteItems(w io.Writer, rows []inventory.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "[ ] %s\n", EmptyStateMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tQTY\tUNIT VALUE\tTOTAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", r.ID, r.Name, r.ItemType, r.Quantity, r.UnitValue, r.Total)
	}
	return tw.Flush()
}

// WriteSummary writes the two dashboard aggregates.
func WriteSummary(w io.Writer, s inventory.Summary) error {
	_, err := fmt.Fprintf(w, "Total items: %s\nTotal value: %s\n", strconv.Itoa(s.TotalQuantity), s.FormattedValue())
	return err
}

// WriteReport writes the per-type breakdown.
func WriteReport(w io.Writer, r inventory.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tITEMS\tQTY\tVALUE")
	for _, name := range r.TypeNames() {
		ts := r.Types[name]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", name, ts.Items, ts.Quantity, inventory.FormatMoney(ts.TotalValue))
	}
	fmt.Fprintf(tw, "ALL\t%d\t%d\t%s\n", r.TotalItemsCount, r.TotalQuantity, inventory.FormatMoney(r.TotalValue))
	return tw.Flush()
}
