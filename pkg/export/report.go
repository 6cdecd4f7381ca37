package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"agrimanage/entities"
	"agrimanage/pkg/dashboard"
)

// BuildXLSX writes a workbook with a crops sheet in the CSV layout and a
// summary sheet with the dashboard totals.
func BuildXLSX(crops []entities.Crop, now time.Time) ([]byte, error) {
	st := dashboard.Aggregate(crops)
	f := excelize.NewFile()
	defer f.Close()

	cropsSheet := "crops"
	summarySheet := "summary"
	if err := f.SetSheetName("Sheet1", cropsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	for i, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(cropsSheet, cell, h)
	}
	for i, c := range crops {
		row := i + 2
		_ = f.SetCellValue(cropsSheet, fmt.Sprintf("A%d", row), c.Name)
		_ = f.SetCellValue(cropsSheet, fmt.Sprintf("B%d", row), string(c.Season))
		_ = f.SetCellValue(cropsSheet, fmt.Sprintf("C%d", row), string(c.Fertilizer))
		_ = f.SetCellValue(cropsSheet, fmt.Sprintf("D%d", row), c.Yield)
		_ = f.SetCellValue(cropsSheet, fmt.Sprintf("E%d", row), c.Area)
	}

	d := st.Display()
	_ = f.SetCellValue(summarySheet, "A1", "Farm Dashboard")
	_ = f.SetCellValue(summarySheet, "A2", "Generated")
	_ = f.SetCellValue(summarySheet, "B2", now.Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A4", "Total Crops")
	_ = f.SetCellValue(summarySheet, "B4", st.TotalCrops)
	_ = f.SetCellValue(summarySheet, "A5", "Total Yield (tons)")
	_ = f.SetCellValue(summarySheet, "B5", d.TotalYield)
	_ = f.SetCellValue(summarySheet, "A6", "Total Area (acres)")
	_ = f.SetCellValue(summarySheet, "B6", d.TotalArea)
	_ = f.SetCellValue(summarySheet, "A7", "Avg Yield per Acre")
	_ = f.SetCellValue(summarySheet, "B7", d.AvgYieldPerArea)

	row := 9
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Season")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "Crops")
	for _, s := range entities.Seasons {
		if n, ok := st.SeasonDistribution[s]; ok {
			row++
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(s))
			_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), n)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildPDF renders the dashboard summary and the crop table on A4.
func BuildPDF(crops []entities.Crop, now time.Time) ([]byte, error) {
	st := dashboard.Aggregate(crops)
	d := st.Display()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Farm Dashboard")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", now.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Crops: %d", st.TotalCrops))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Area: %s acres", d.TotalArea))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Yield: %s tons", d.TotalYield))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Avg Yield per Acre: %s", d.AvgYieldPerArea))
	pdf.Ln(8)

	if len(st.FertilizerUsage) > 0 {
		ferts := make([]string, 0, len(st.FertilizerUsage))
		for f := range st.FertilizerUsage {
			ferts = append(ferts, string(f))
		}
		sort.Strings(ferts)
		for _, f := range ferts {
			pdf.Cell(0, 6, fmt.Sprintf("%s: %d crops", f, st.FertilizerUsage[entities.Fertilizer(f)]))
			pdf.Ln(5)
		}
		pdf.Ln(3)
	}

	widths := []float64{50, 30, 30, 35, 35}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range Header {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, c := range crops {
		pdf.CellFormat(widths[0], 6, c.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, string(c.Season), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 6, string(c.Fertilizer), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, num(c.Yield), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, num(c.Area), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
