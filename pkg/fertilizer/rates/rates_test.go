package rates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agrimanage/pkg/apperr"
)

func TestDefaultRates(t *testing.T) {
	tbl := Default()
	cases := []struct {
		crop, fert string
		want       float64
	}{
		{"wheat", "urea", 100},
		{"Rice", "UREA", 120},
		{" maize ", "dap", 40},
		{"cotton", "MOP", 22},
		{"sugarcane", "dap", 75},
	}
	for _, tc := range cases {
		got, err := tbl.Rate(tc.crop, tc.fert)
		require.NoError(t, err, tc.crop+"/"+tc.fert)
		assert.Equal(t, tc.want, got)
	}
}

func TestUnknownCombination(t *testing.T) {
	tbl := Default()
	for _, pair := range [][2]string{{"wheat", "organic"}, {"rice", "npk"}, {"barley", "urea"}, {"", ""}} {
		_, err := tbl.Rate(pair[0], pair[1])
		assert.ErrorIs(t, err, apperr.ErrUnknownCombination, pair)
	}
}

func TestCropsAndRowsStableOrder(t *testing.T) {
	tbl := Default()
	assert.Equal(t, []string{"cotton", "maize", "rice", "sugarcane", "wheat"}, tbl.Crops())
	rows := tbl.Rows()
	require.Len(t, rows, 15)
	assert.Equal(t, Row{Crop: "cotton", Fertilizer: "dap", Rate: 45}, rows[0])
	assert.Equal(t, Row{Crop: "wheat", Fertilizer: "urea", Rate: 100}, rows[14])
}

func write(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadYAMLMergesOverDefault(t *testing.T) {
	p := write(t, "rates.yaml", "Wheat:\n  Organic: 300\nbarley:\n  urea: 70\n")
	loaded, err := LoadFile(p)
	require.NoError(t, err)

	tbl := Default().Merge(loaded)
	v, err := tbl.Rate("wheat", "organic")
	require.NoError(t, err)
	assert.Equal(t, 300.0, v)
	v, _ = tbl.Rate("wheat", "urea")
	assert.Equal(t, 100.0, v)
	v, _ = tbl.Rate("barley", "urea")
	assert.Equal(t, 70.0, v)

	_, err = Default().Rate("wheat", "organic")
	assert.ErrorIs(t, err, apperr.ErrUnknownCombination)
}

func TestLoadCSVLongAndWide(t *testing.T) {
	long := write(t, "long.csv", "\uFEFFCrop,Fertilizer,Rate\nrice,urea,125\nrice,npk,\n")
	tbl, err := LoadFile(long)
	require.NoError(t, err)
	v, err := tbl.Rate("rice", "urea")
	require.NoError(t, err)
	assert.Equal(t, 125.0, v)
	_, err = tbl.Rate("rice", "npk")
	assert.ErrorIs(t, err, apperr.ErrUnknownCombination)

	wide := write(t, "wide.csv", "crop,urea,dap,mop\nsoybean,30,60,\n")
	tbl, err = LoadFile(wide)
	require.NoError(t, err)
	v, _ = tbl.Rate("Soybean", "DAP")
	assert.Equal(t, 60.0, v)
	assert.Len(t, tbl.Rows(), 2)
}

func TestLoadCSVRejectsBadRate(t *testing.T) {
	_, err := LoadFile(write(t, "bad.csv", "crop,urea\nrice,lots\n"))
	assert.Error(t, err)
	_, err = LoadFile(write(t, "nocrop.csv", "plant,urea\nrice,1\n"))
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	x := excelize.NewFile()
	defer x.Close()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"crop", "fertilizer", "rate"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"millet", "urea", 55}))
	p := filepath.Join(t.TempDir(), "rates.xlsx")
	require.NoError(t, x.SaveAs(p))

	tbl, err := LoadFile(p)
	require.NoError(t, err)
	v, err := tbl.Rate("millet", "urea")
	require.NoError(t, err)
	assert.Equal(t, 55.0, v)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := LoadFile("rates.json")
	assert.Error(t, err)
}
