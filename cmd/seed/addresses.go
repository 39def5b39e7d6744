package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ikkim/kiwimarket-backend/internal/app/model"
	"github.com/xuri/excelize/v2"
)

// 헤더 이름 → 모델 필드. 영문 헤더도 허용한다
var addressColumns = map[string]string{
	"id":           "id",
	"코드":           "code",
	"code":         "code",
	"시도":           "region",
	"region":       "region",
	"시군구":          "district",
	"district":     "district",
	"읍면동":          "neighborhood",
	"neighborhood": "neighborhood",
	"경도":           "longitude",
	"longitude":    "longitude",
	"위도":           "latitude",
	"latitude":     "latitude",
}

var requiredColumns = []string{"code", "region", "district", "neighborhood"}

type importSummary struct {
	total   int
	valid   int
	skipped int
}

func (s importSummary) print() {
	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", s.total)
	fmt.Printf("  Valid addresses: %d\n", s.valid)
	fmt.Printf("  Skipped rows: %d\n", s.skipped)
}

func readAddressesFromXLSX(filePath string) ([]model.Address, importSummary, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, importSummary{}, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트만 읽는다
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, importSummary{}, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, importSummary{}, fmt.Errorf("failed to read rows: %w", err)
	}
	return parseAddressRows(rows)
}

// parseAddressRows maps rows by the header row. Rows missing a required
// column or repeating a code are skipped.
func parseAddressRows(rows [][]string) ([]model.Address, importSummary, error) {
	if len(rows) == 0 {
		return nil, importSummary{}, fmt.Errorf("no data found in XLSX file")
	}

	index := make(map[string]int)
	for i, header := range rows[0] {
		if field, ok := addressColumns[strings.ToLower(strings.TrimSpace(header))]; ok {
			index[field] = i
		}
	}
	for _, field := range requiredColumns {
		if _, ok := index[field]; !ok {
			return nil, importSummary{}, fmt.Errorf("missing column %q in header %v", field, rows[0])
		}
	}

	cell := func(row []string, field string) string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	summary := importSummary{total: len(rows) - 1}
	seen := make(map[string]bool)
	var addresses []model.Address

	for _, row := range rows[1:] {
		address := model.Address{
			Code:         cell(row, "code"),
			Region:       cell(row, "region"),
			District:     cell(row, "district"),
			Neighborhood: cell(row, "neighborhood"),
		}
		if address.Code == "" || address.Region == "" || address.District == "" || address.Neighborhood == "" || seen[address.Code] {
			summary.skipped++
			continue
		}
		seen[address.Code] = true

		if raw := cell(row, "id"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				summary.skipped++
				continue
			}
			address.ID = uint(id)
		}
		// 좌표는 비어 있으면 0으로 둔다
		address.Longitude, _ = strconv.ParseFloat(cell(row, "longitude"), 64)
		address.Latitude, _ = strconv.ParseFloat(cell(row, "latitude"), 64)

		addresses = append(addresses, address)
	}

	summary.valid = len(addresses)
	return addresses, summary, nil
}
