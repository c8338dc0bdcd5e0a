package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"notaryflow/internal/csvexport"
	"notaryflow/internal/domain"
	"notaryflow/internal/port"
)

const exportBatchSize = 500

// ReportService provides back-office listing and export of submissions.
type ReportService interface {
	List(ctx context.Context, offset, limit int) ([]domain.SubmissionRecord, int, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type reportService struct {
	repo port.SubmissionRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(repo port.SubmissionRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) List(ctx context.Context, offset, limit int) ([]domain.SubmissionRecord, int, error) {
	return s.repo.List(ctx, offset, limit)
}

// ExportCSV streams every submission as CSV, prefixed with a UTF-8 BOM so
// Excel opens it correctly.
func (s *reportService) ExportCSV(ctx context.Context, w io.Writer) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}

	offset := 0
	for {
		subs, _, err := s.repo.List(ctx, offset, exportBatchSize)
		if err != nil {
			return fmt.Errorf("reportService.ExportCSV: %w", err)
		}
		if len(subs) == 0 {
			break
		}
		if err := cw.WriteSubmissions(subs); err != nil {
			return fmt.Errorf("reportService.ExportCSV: %w", err)
		}
		if len(subs) < exportBatchSize {
			break
		}
		offset += exportBatchSize
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	return nil
}

// ExportXLSX writes every submission into a single-sheet workbook.
func (s *reportService) ExportXLSX(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Submissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	header := make([]interface{}, len(csvexport.Columns))
	for i, c := range csvexport.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("reportService.ExportXLSX: %w", err)
	}

	rowNum := 2
	offset := 0
	for {
		subs, _, err := s.repo.List(ctx, offset, exportBatchSize)
		if err != nil {
			return fmt.Errorf("reportService.ExportXLSX: %w", err)
		}
		if len(subs) == 0 {
			break
		}
		for i := range subs {
			cells := csvexport.SubmissionToRow(&subs[i])
			row := make([]interface{}, len(cells))
			for j, c := range cells {
				row[j] = c
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return fmt.Errorf("reportService.ExportXLSX: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return fmt.Errorf("reportService.ExportXLSX: %w", err)
			}
			rowNum++
		}
		if len(subs) < exportBatchSize {
			break
		}
		offset += exportBatchSize
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	return nil
}
