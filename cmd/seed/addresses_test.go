package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSX(t *testing.T, rows [][]interface{}) string {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "addresses.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadAddressesFromXLSX(t *testing.T) {
	path := writeXLSX(t, [][]interface{}{
		{"id", "코드", "시도", "시군구", "읍면동", "경도", "위도"},
		{1817, "1129010100", "서울특별시", "성북구", "삼선동1가", "127.0107", "37.5843"},
		{1818, "1129010200", "서울특별시", "성북구", "삼선동2가", "127.0110", "37.5850"},
		{1819, "1129010200", "서울특별시", "성북구", "중복", "127.0110", "37.5850"},
		{1820, "", "서울특별시", "성북구", "코드없음", "", ""},
	})

	addresses, summary, err := readAddressesFromXLSX(path)
	require.NoError(t, err)

	assert.Equal(t, importSummary{total: 4, valid: 2, skipped: 2}, summary)
	require.Len(t, addresses, 2)
	assert.Equal(t, uint(1817), addresses[0].ID)
	assert.Equal(t, "1129010100", addresses[0].Code)
	assert.Equal(t, "삼선동1가", addresses[0].Neighborhood)
	assert.InDelta(t, 127.0107, addresses[0].Longitude, 1e-9)
	assert.InDelta(t, 37.5843, addresses[0].Latitude, 1e-9)
	assert.Equal(t, "성북구 삼선동2가", addresses[1].TownName())
}

func TestParseAddressRows(t *testing.T) {
	t.Run("english headers without id", func(t *testing.T) {
		addresses, summary, err := parseAddressRows([][]string{
			{"Code", "Region", "District", "Neighborhood"},
			{"1168010100", "서울특별시", "강남구", "역삼동"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.valid)
		require.Len(t, addresses, 1)
		assert.Zero(t, addresses[0].ID)
		assert.Zero(t, addresses[0].Longitude)
	})

	t.Run("missing required column", func(t *testing.T) {
		_, _, err := parseAddressRows([][]string{
			{"코드", "시도", "시군구"},
			{"1168010100", "서울특별시", "강남구"},
		})
		assert.Error(t, err)
	})

	t.Run("empty sheet", func(t *testing.T) {
		_, _, err := parseAddressRows(nil)
		assert.Error(t, err)
	})
}
