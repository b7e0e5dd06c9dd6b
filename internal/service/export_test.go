package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/arogya-mitra/arogyabot/internal/domain"
)

func TestBuildRecordsWorkbook(t *testing.T) {
	url := "https://files.example.com/records/scan.jpg"
	records := []domain.MedicalRecord{
		{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			Notes:     "Blood pressure 120/80",
			CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			Notes:     "Skin rash photo",
			ImageURL:  &url,
			CreatedAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	buf, err := BuildRecordsWorkbook(records)
	if err != nil {
		t.Fatalf("BuildRecordsWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Notes" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "Blood pressure 120/80" {
		t.Fatalf("unexpected first record row: %v", rows[1])
	}
	if rows[2][2] != url {
		t.Fatalf("image url missing: %v", rows[2])
	}
}

func TestBuildRecordsWorkbookEmpty(t *testing.T) {
	buf, err := BuildRecordsWorkbook(nil)
	if err != nil {
		t.Fatalf("BuildRecordsWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want header only, got %d rows", len(rows))
	}
}
