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

var orderFilterOptions = report.FilterOptions{
	SortColumns: []report.SortColumn{
		{Name: "orderDate", DefaultDirection: report.Desc},
		{Name: "orderNumber", DefaultDirection: report.Asc},
		{Name: "totalAmount", DefaultDirection: report.Desc},
		{Name: "customer", DefaultDirection: report.Asc},
		{Name: "status", DefaultDirection: report.Asc},
	},
	DefaultSort: "orderDate",
	Flags:       []string{report.FlagFilterConsumer},
}

// OrderUseCase listado y detalle de órdenes.
type OrderUseCase struct {
	repo     repository.OrderRepository
	settings reporting.Settings
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, settings reporting.Settings) *OrderUseCase {
	return &OrderUseCase{repo: repo, settings: settings}
}

// List órdenes de la ventana pedida (por defecto el período configurado), 50 por página.
func (uc *OrderUseCase) List(ctx context.Context, raw map[string][]string) (*dto.ListResponse[dto.OrderRowDTO], error) {
	lq := uc.settings.ListQuery(raw, uc.settings.Options(true, orderFilterOptions))

	page, err := uc.repo.List(ctx, lq)
	if err != nil {
		return nil, reporting.StoreError("orders.List", err)
	}

	now := uc.settings.Now()
	rows := make([]dto.OrderRowDTO, 0, len(page.Rows))
	for _, o := range page.Rows {
		rows = append(rows, dto.OrderRowDTO{
			ID:                 o.ID,
			OrderNumber:        o.OrderNumber,
			OrderDate:          o.OrderDate,
			DaysAgo:            format.DaysAgo(o.OrderDate, now),
			TotalAmount:        o.TotalAmount,
			TotalAmountDisplay: format.Currency(o.TotalAmount, true),
			Status:             o.Status,
			PaymentStatus:      o.PaymentStatus,
			Channel:            o.Channel,
			CustomerID:         o.CustomerID,
			CustomerName:       o.CustomerName,
			CompanyName:        o.CompanyName,
			PrimaryEmail:       o.PrimaryEmail,
			ItemCount:          o.ItemCount,
		})
	}
	resp := reporting.Page(rows, page.TotalCount, lq.Filters)
	return &resp, nil
}

// Get orden con sus líneas.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderDetailDTO, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("orders.Get: %w", domain.ErrNotFound)
	}
	o, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, reporting.StoreError("orders.Get", err)
	}

	items := make([]dto.OrderLineItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderLineItemDTO{
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineAmount:  it.LineAmount,
		})
	}
	return &dto.OrderDetailDTO{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Channel:       o.Channel,
		CustomerID:    o.CustomerID,
		Items:         items,
	}, nil
}
