package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/esepkerala/registration-backend/internal/registration"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Column order is fixed; admin tooling that post-processes the export
// depends on it.
var registrationHeaders = []string{
	"Customer ID", "Name", "Category", "Mobile", "Panchayath", "Ward", "Status", "Created At",
}

// Exporter renders registration rows into a downloadable document.
type Exporter interface {
	ExportRegistrations(format string, regs []registration.Registration) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

// ExportRegistrations returns the file bytes, the filename, and the MIME type.
func (e *exporter) ExportRegistrations(format string, regs []registration.Registration) ([]byte, string, string, error) {
	date := time.Now().Format("2006-01-02")

	switch format {
	case FormatCSV, "":
		data, err := e.exportRegistrationsCSV(regs)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_%s.csv", date), "text/csv", nil

	case FormatExcel:
		data, err := e.exportRegistrationsExcel(regs)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_%s.xlsx", date), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		data, err := e.exportRegistrationsPDF(regs)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("registrations_%s.pdf", date), "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported export format: %s", format)
	}
}

func (e *exporter) exportRegistrationsCSV(regs []registration.Registration) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(registrationHeaders); err != nil {
		return nil, err
	}

	for _, r := range regs {
		record := []string{
			r.CustomerID,
			r.Name,
			r.CategoryName,
			r.MobileNumber,
			r.PanchayathName,
			r.Ward,
			r.Status,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportRegistrationsExcel(regs []registration.Registration) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Registrations"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, h := range registrationHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, r := range regs {
		row := rIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.CustomerID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.CategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.MobileNumber)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.PanchayathName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Ward)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Status)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) exportRegistrationsPDF(regs []registration.Registration) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Registrations (%d)", len(regs)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{40, 45, 35, 28, 40, 18, 25, 38}
	for i, h := range registrationHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, r := range regs {
		pdf.CellFormat(widths[0], 6, r.CustomerID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, r.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, r.MobileNumber, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, r.PanchayathName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, r.Ward, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[6], 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, r.CreatedAt.Format("2006-01-02 15:04:05"), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
