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

var customerFilterOptions = report.FilterOptions{
	SortColumns: []report.SortColumn{
		{Name: "totalSpent", DefaultDirection: report.Desc},
		{Name: "name", DefaultDirection: report.Asc},
		{Name: "company", DefaultDirection: report.Asc},
		{Name: "orderCount", DefaultDirection: report.Desc},
		{Name: "lastOrderDate", DefaultDirection: report.Desc},
	},
	DefaultSort:   "totalSpent",
	Flags:         []string{report.FlagFilterConsumer, report.FlagEmailMarketable},
	DefaultPeriod: report.PeriodAll,
}

// CustomerUseCase listado y ficha de clientes.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	settings reporting.Settings
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, settings reporting.Settings) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, settings: settings}
}

// List listado paginado; raw es la query string sin procesar.
func (uc *CustomerUseCase) List(ctx context.Context, raw map[string][]string) (*dto.ListResponse[dto.CustomerRowDTO], error) {
	lq := uc.settings.ListQuery(raw, uc.settings.Options(false, customerFilterOptions))

	page, err := uc.repo.List(ctx, lq)
	if err != nil {
		return nil, reporting.StoreError("customers.List", err)
	}

	now := uc.settings.Now()
	rows := make([]dto.CustomerRowDTO, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, dto.CustomerRowDTO{
			ID:                r.ID,
			Name:              r.Name,
			CompanyName:       r.CompanyName,
			PrimaryEmail:      r.PrimaryEmail,
			PrimaryPhone:      r.PrimaryPhone,
			OrderCount:        r.OrderCount,
			TotalSpent:        r.TotalSpent.Round(2),
			TotalSpentDisplay: format.Currency(r.TotalSpent, false),
			LastOrderDate:     r.LastOrderDate,
			LastOrderDisplay:  format.RelativeDays(r.LastOrderDate, now),
		})
	}
	resp := reporting.Page(rows, page.TotalCount, lq.Filters)
	return &resp, nil
}

// Get ficha del cliente con todos sus contactos.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerDetailDTO, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("customers.Get: %w", domain.ErrNotFound)
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, reporting.StoreError("customers.Get", err)
	}

	out := &dto.CustomerDetailDTO{
		ID:              c.ID,
		Name:            c.Name,
		CompanyID:       c.CompanyID,
		EmailMarketable: c.EmailMarketable,
		PrimaryEmail:    c.PrimaryEmail(),
		Emails:          make([]dto.ContactEmailDTO, 0, len(c.Emails)),
		Phones:          make([]dto.ContactPhoneDTO, 0, len(c.Phones)),
		CreatedAt:       c.CreatedAt,
	}
	for _, e := range c.Emails {
		out.Emails = append(out.Emails, dto.ContactEmailDTO{Email: e.Email, IsPrimary: e.IsPrimary})
	}
	for _, p := range c.Phones {
		out.Phones = append(out.Phones, dto.ContactPhoneDTO{Phone: p.Phone, IsPrimary: p.IsPrimary})
	}
	return out, nil
}
