package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

var testNow = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

func testSettings() reporting.Settings {
	return reporting.Settings{
		ConsumerDomains: []string{"gmail.com", "yahoo.com"},
		DefaultPageSize: 10,
		LargePageSize:   50,
		MaxPageSize:     200,
		DefaultPeriod:   "30d",
		Clock:           func() time.Time { return testNow },
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type fakeCustomerRepo struct {
	lastQuery repository.ListQuery
	page      *repository.Page[repository.CustomerRow]
	customer  *entity.Customer
	err       error
}

func (f *fakeCustomerRepo) List(_ context.Context, q repository.ListQuery) (*repository.Page[repository.CustomerRow], error) {
	f.lastQuery = q
	return f.page, f.err
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.customer == nil || f.customer.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.customer, nil
}

type fakeOrderRepo struct {
	lastQuery repository.ListQuery
	page      *repository.Page[repository.OrderRow]
	order     *entity.Order
	err       error
}

func (f *fakeOrderRepo) List(_ context.Context, q repository.ListQuery) (*repository.Page[repository.OrderRow], error) {
	f.lastQuery = q
	return f.page, f.err
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if f.order == nil || f.order.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.order, nil
}

type fakeCompanyRepo struct {
	lastQuery repository.ListQuery
	page      *repository.Page[repository.CompanyRow]
	company   *entity.Company
}

func (f *fakeCompanyRepo) List(_ context.Context, q repository.ListQuery) (*repository.Page[repository.CompanyRow], error) {
	f.lastQuery = q
	return f.page, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if f.company == nil || f.company.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.company, nil
}

type fakeProductRepo struct {
	lastQuery repository.ListQuery
	page      *repository.Page[repository.ProductRow]
	products  map[string]*entity.Product
	pricing   []repository.ProductPricing
	err       error
}

func (f *fakeProductRepo) List(_ context.Context, q repository.ListQuery) (*repository.Page[repository.ProductRow], error) {
	f.lastQuery = q
	return f.page, f.err
}

func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	if p, ok := f.products[code]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return f.GetByCode(ctx, code)
}

func (f *fakeProductRepo) UpdatePricing(_ context.Context, code string, cost, listPrice *decimal.Decimal) error {
	p, ok := f.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost, p.ListPrice = cost, listPrice
	return nil
}

func (f *fakeProductRepo) ListPricing(context.Context) ([]repository.ProductPricing, error) {
	return f.pricing, f.err
}

type fakeHistoryRepo struct {
	rows []entity.ProductPriceHistory
}

func (f *fakeHistoryRepo) Append(_ context.Context, h *entity.ProductPriceHistory) error {
	f.rows = append(f.rows, *h)
	return nil
}

func (f *fakeHistoryRepo) ListByProduct(_ context.Context, code string) ([]entity.ProductPriceHistory, error) {
	var out []entity.ProductPriceHistory
	for _, h := range f.rows {
		if h.ProductCode == code {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) PriceAt(_ context.Context, code string, date time.Time) (*entity.ProductPriceHistory, error) {
	var best *entity.ProductPriceHistory
	for i, h := range f.rows {
		if h.ProductCode != code || h.EffectiveDate.After(date) {
			continue
		}
		if best == nil || h.EffectiveDate.After(best.EffectiveDate) {
			best = &f.rows[i]
		}
	}
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return best, nil
}
