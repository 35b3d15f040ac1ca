// Package export renders remittance statements for clients.
package export

import (
	"fmt"

	"github.com/SscSPs/cod_ledger/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet   = "Summary"
	ShipmentsSheet = "Shipments"

	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04"
)

var shipmentHeaders = []string{"AWB", "Collection ID", "Collected By", "Payment Mode", "Collection Time", "Expected", "Collected", "Deposit ID", "Reconciled At"}

// RemittanceStatement builds an XLSX workbook with a summary sheet and one row per shipment.
// Amounts are written as their exact decimal strings.
func RemittanceStatement(r domain.Remittance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if _, err := f.NewSheet(ShipmentsSheet); err != nil {
		return nil, fmt.Errorf("failed to create shipments sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	summary := [][2]any{
		{"Remittance Number", r.RemittanceNumber},
		{"Client", r.ClientID},
		{"Period Start", r.PeriodStart.Format(dateLayout)},
		{"Period End", r.PeriodEnd.Format(dateLayout)},
		{"Status", string(r.Status)},
		{"Shipments", r.ShipmentCount},
		{"Gross COD Collected", r.GrossCODCollected.StringFixed(2)},
		{"Deductions", r.Deductions.StringFixed(2)},
		{"Net Remittance", r.NetRemittance.StringFixed(2)},
		{"Bank Account", r.AccountNumber},
		{"IFSC", r.IFSC},
		{"Bank Name", r.BankName},
	}
	if r.PaymentReference != nil {
		summary = append(summary, [2]any{"Payment Reference", *r.PaymentReference})
	}
	for i, row := range summary {
		if err := setRow(f, SummarySheet, i+1, row[0], row[1]); err != nil {
			return nil, err
		}
	}

	headers := make([]any, len(shipmentHeaders))
	for i, h := range shipmentHeaders {
		headers[i] = h
	}
	if err := setRow(f, ShipmentsSheet, 1, headers...); err != nil {
		return nil, err
	}
	for i, c := range r.Collections {
		deposit, reconciled := "", ""
		if c.DepositID != nil {
			deposit = *c.DepositID
		}
		if c.ReconciledAt != nil {
			reconciled = c.ReconciledAt.Format(timeLayout)
		}
		if err := setRow(f, ShipmentsSheet, i+2,
			c.AWBNumber,
			c.CollectionID,
			c.CollectedByName,
			string(c.PaymentMode),
			c.CollectionTime.Format(timeLayout),
			c.ExpectedAmount.StringFixed(2),
			c.CollectedAmount.StringFixed(2),
			deposit,
			reconciled,
		); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write statement workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell %d,%d: %w", col+1, row, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
