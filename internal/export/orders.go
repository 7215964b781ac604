package export

import (
	"fmt"
	"io"
	"time"

	"bizdash-be/internal/order"
	"bizdash-be/internal/pricing"

	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Orders"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var orderHeader = []interface{}{
	"Order", "Client", "Payment", "Delivery", "Progress (%)",
	"Feedback", "Expected delivery", "Total", "Created",
}

// OrdersFilename names the download for the given export time.
func OrdersFilename(now time.Time) string {
	return fmt.Sprintf("orders-%s.xlsx", now.Format("20060102-150405"))
}

func orderRow(o *order.Order) []interface{} {
	glyph := pricing.SatisfactionDisplay(o.DeliveryStatus, o.CustomerSatisfaction)

	return []interface{}{
		o.Code,
		o.ClientName,
		string(o.PaymentStatus),
		string(o.DeliveryStatus),
		o.DeliveryProgress,
		glyph.Face + " " + glyph.Title,
		o.ExpectedDeliveryDate.Format("2006-01-02"),
		o.TotalAmount.InexactFloat64(),
		o.CreatedAt.Format(time.RFC3339),
	}
}

// WriteOrders renders one row per order into an XLSX workbook written to w.
func WriteOrders(w io.Writer, orders []*order.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(orderHeader))
	if err := f.SetCellStyle(OrdersSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(OrdersSheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := orderRow(o)
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			return fmt.Errorf("write order %s: %w", o.Code, err)
		}
	}

	return f.Write(w)
}
