package service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

const exportSheet = "Health Records"

// BuildRecordsWorkbook renders a user's medical records into an xlsx
// workbook for download.
func BuildRecordsWorkbook(records []domain.MedicalRecord) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{"Date", "Notes", "Image"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, r := range records {
		rowNum := i + 2
		image := ""
		if r.ImageURL != nil {
			image = *r.ImageURL
		}
		values := []any{
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Notes,
			image,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("record cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write record: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
