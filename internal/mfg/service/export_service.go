package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportService renders the current forecast report as a spreadsheet for
// the production-floor planners.
type ExportService struct {
	forecastSvc *ForecastService
}

func NewExportService(forecastSvc *ForecastService) *ExportService {
	return &ExportService{forecastSvc: forecastSvc}
}

// ReportWorkbook builds an xlsx with one sheet per report section.
func (s *ExportService) ReportWorkbook(ctx context.Context) (*excelize.File, error) {
	report, err := s.forecastSvc.Report(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	if err := writeProductsSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeShortagesSheet(f, report); err != nil {
		return nil, err
	}
	if err := writeProcessSheet(f, report); err != nil {
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeProductsSheet(f *excelize.File, report *ForecastReport) error {
	const sheet = "Production Plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Code", "Name", "Forecasted", "On Hand", "Gallatin", "Need To Build", "Build Hours"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, p := range report.Products {
		row := []interface{}{p.Code, p.Name, p.Forecasted, p.OnHand, p.OffSite, p.NeedToBuild, p.BuildHours}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeShortagesSheet(f *excelize.File, report *ForecastReport) error {
	const sheet = "Shortages"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Code", "Name", "Needed", "Available", "Shortfall", "Consumers"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, sh := range report.Shortages {
		consumers := ""
		for j, c := range sh.Consumers {
			if j > 0 {
				consumers += ", "
			}
			consumers += c
		}
		row := []interface{}{sh.Code, sh.Name, sh.Needed, sh.Available, sh.Shortfall, consumers}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeProcessSheet(f *excelize.File, report *ForecastReport) error {
	const sheet = "Labor"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	header := []interface{}{"Process", "Units", "Seconds", "Hours"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, load := range report.ProcessTotals {
		values := []interface{}{load.Process, load.Units, load.Seconds, load.Hours}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return err
		}
		row++
	}

	if report.Labor != nil {
		row++
		summary := [][]interface{}{
			{"Days In Range", report.Labor.DaysInRange},
			{"Workers", report.Labor.WorkerCount},
			{"Available Hours", report.Labor.AvailableHours},
			{"Required Hours", report.Labor.RequiredHours},
			{"Sufficient", report.Labor.Sufficient},
		}
		for _, values := range summary {
			v := values
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &v); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}
