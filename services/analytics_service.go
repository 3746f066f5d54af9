package services

import (
	"time"

	"reservation-server/repositories"
)

// MonthlyReport is the admin revenue rollup for one calendar month.
type MonthlyReport struct {
	Year       int                            `json:"year"`
	Month      int                            `json:"month"`
	Total      int                            `json:"total"`
	Properties []repositories.PropertyRevenue `json:"properties"`
}

// AnalyticsService aggregates paid payments per property.
type AnalyticsService struct {
	payments repositories.PaymentStore
}

func NewAnalyticsService(payments repositories.PaymentStore) *AnalyticsService {
	return &AnalyticsService{payments: payments}
}

// MonthlyRevenue reports per-property sums of paid payments for the
// given month. Zero year/month default to the current month.
func (s *AnalyticsService) MonthlyRevenue(year, month int) (*MonthlyReport, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if year < 0 || month < 1 || month > 12 {
		return nil, BadRequestError("Invalid year or month")
	}

	rows, err := s.payments.RevenueByMonth(year, month)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Year: year, Month: month, Properties: rows}
	for _, row := range rows {
		report.Total += row.Total
	}
	return report, nil
}
