package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/formcraft/formcraft-backend/internal/receipt"
	"github.com/formcraft/formcraft-backend/pkg/db/models"
	"github.com/formcraft/formcraft-backend/pkg/enums"
	"github.com/formcraft/formcraft-backend/pkg/types"
)

// utf8BOM lets spreadsheet apps detect the encoding; Thai headers render
// as mojibake without it.
const utf8BOM = "\uFEFF"

const (
	headerID       = "ID"
	headerDate     = "วันที่"
	headerShipping = "การจัดส่ง"
	headerShipCost = "ค่าส่ง"
	headerTotal    = "ยอดรวม"
	headerStatus   = "สถานะชำระ"

	shippingPickupLabel   = "รับที่สถานที่"
	shippingDeliveryLabel = "ไปรษณีย์"
)

// File is a rendered CSV export.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Build renders submissions into the orders CSV. Columns are the base
// submission fields, one column per form field, then one column per
// product: singles first, sets after, each encoded with the compact
// product codes. now stamps the filename.
func Build(subs []models.Submission, products []models.Product, sections types.FormSections, onlyConfirmed bool, now time.Time) *File {
	if onlyConfirmed {
		var confirmed []models.Submission
		for _, sub := range subs {
			if sub.PaymentStatus == enums.PaymentStatusConfirmed {
				confirmed = append(confirmed, sub)
			}
		}
		subs = confirmed
	}

	var singles, sets []models.Product
	for _, p := range products {
		if p.IsSet() {
			sets = append(sets, p)
		} else {
			singles = append(singles, p)
		}
	}

	fields := flattenFields(sections)

	header := []string{headerID, headerDate}
	for _, f := range fields {
		header = append(header, f.Label)
	}
	header = append(header, headerShipping, headerShipCost, headerTotal, headerStatus)
	for _, p := range singles {
		header = append(header, p.Code)
	}
	for _, p := range sets {
		header = append(header, p.Code)
	}

	rows := [][]string{header}
	for _, sub := range subs {
		row := []string{
			sub.ID.String(),
			sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		}
		for _, f := range fields {
			row = append(row, sub.FieldValues[f.ID])
		}

		shippingLabel := shippingDeliveryLabel
		if sub.ShippingMethod == enums.ShippingMethodPickup {
			shippingLabel = shippingPickupLabel
		}
		row = append(row,
			shippingLabel,
			sub.ShippingCost.String(),
			sub.Total.String(),
			sub.PaymentStatus.String(),
		)

		for _, p := range singles {
			row = append(row, receipt.SingleColumn(sub.Items, p.ID))
		}
		for _, p := range sets {
			row = append(row, receipt.SetColumn(sub.Items, p.ID, p.Code))
		}

		rows = append(rows, row)
	}

	return &File{
		Filename:    filename(onlyConfirmed, now),
		ContentType: "text/csv; charset=utf-8",
		Content:     []byte(utf8BOM + render(rows)),
	}
}

func flattenFields(sections types.FormSections) []types.FormField {
	var fields []types.FormField
	for _, section := range sections {
		fields = append(fields, section.Fields...)
	}
	return fields
}

// render quotes every cell. Double quotes inside a value become single
// quotes rather than doubling, matching what the downstream sheet
// tooling expects.
func render(rows [][]string) string {
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = `"` + strings.ReplaceAll(cell, `"`, `'`) + `"`
		}
		out[i] = strings.Join(cells, ",")
	}
	return strings.Join(out, "\n")
}

func filename(onlyConfirmed bool, now time.Time) string {
	scope := ""
	if onlyConfirmed {
		scope = "confirmed_"
	}
	return fmt.Sprintf("orders_%s%s.csv", scope, now.Format("2006-01-02"))
}
