package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

var companyFilterOptions = report.FilterOptions{
	SortColumns: []report.SortColumn{
		{Name: "totalRevenue", DefaultDirection: report.Desc},
		{Name: "name", DefaultDirection: report.Asc},
		{Name: "domain", DefaultDirection: report.Asc},
		{Name: "customerCount", DefaultDirection: report.Desc},
		{Name: "lastOrderDate", DefaultDirection: report.Desc},
	},
	DefaultSort:   "totalRevenue",
	Flags:         []string{report.FlagFilterConsumer, report.FlagEnriched},
	DefaultPeriod: report.PeriodAll,
}

// CompanyUseCase listado y ficha de empresas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	settings reporting.Settings
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, settings reporting.Settings) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, settings: settings}
}

// List listado paginado de empresas.
func (uc *CompanyUseCase) List(ctx context.Context, raw map[string][]string) (*dto.ListResponse[dto.CompanyRowDTO], error) {
	lq := uc.settings.ListQuery(raw, uc.settings.Options(false, companyFilterOptions))

	page, err := uc.repo.List(ctx, lq)
	if err != nil {
		return nil, reporting.StoreError("companies.List", err)
	}

	now := uc.settings.Now()
	rows := make([]dto.CompanyRowDTO, 0, len(page.Rows))
	for _, c := range page.Rows {
		rows = append(rows, dto.CompanyRowDTO{
			ID:                  c.ID,
			Name:                c.Name,
			Domain:              c.Domain,
			Enriched:            c.Enriched,
			CustomerCount:       c.CustomerCount,
			OrderCount:          c.OrderCount,
			TotalRevenue:        c.TotalRevenue.Round(2),
			TotalRevenueDisplay: format.Currency(c.TotalRevenue, false),
			LastOrderDate:       c.LastOrderDate,
			LastOrderDisplay:    format.RelativeDays(c.LastOrderDate, now),
		})
	}
	resp := reporting.Page(rows, page.TotalCount, lq.Filters)
	return &resp, nil
}

// Get ficha de la empresa.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*dto.CompanyDetailDTO, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("companies.Get: %w", domain.ErrNotFound)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, reporting.StoreError("companies.Get", err)
	}
	out := &dto.CompanyDetailDTO{ID: c.ID, Name: c.Name, Domain: c.Domain, CreatedAt: c.CreatedAt}
	if c.IsEnriched() {
		out.Enrichment = c.Enrichment
	}
	return out, nil
}
