package repository

import (
	"context"
	"fmt"

	"fambalance/internal/models"
	"fambalance/internal/store"
)

// ReportRepository handles storage of weekly reports. Reports are never updated.
type ReportRepository struct {
	reports collection[models.Report]
}

// NewReportRepository creates a new report repository
func NewReportRepository(s store.Store) *ReportRepository {
	return &ReportRepository{reports: collection[models.Report]{
		store: s,
		key:   store.KeyReports,
		id:    func(r *models.Report) string { return r.ID },
	}}
}

// CreateReport appends a report
func (r *ReportRepository) CreateReport(ctx context.Context, report *models.Report) error {
	if err := r.reports.insert(ctx, *report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReportByID retrieves a report, or nil
func (r *ReportRepository) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	report, err := r.reports.getByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// GetFamilyReports returns the family's reports in stored order
func (r *ReportRepository) GetFamilyReports(ctx context.Context, familyID string) ([]models.Report, error) {
	reports, err := r.reports.filter(ctx, func(rep *models.Report) bool { return rep.FamilyID == familyID })
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}
	return reports, nil
}
