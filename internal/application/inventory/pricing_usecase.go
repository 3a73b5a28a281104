package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/application/reporting"
	"github.com/jhoicas/Tablero-api/internal/domain"
	"github.com/jhoicas/Tablero-api/internal/domain/entity"
	"github.com/jhoicas/Tablero-api/internal/domain/report"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
	"github.com/jhoicas/Tablero-api/pkg/format"
)

// PricingUseCase única escritura del sistema: actualiza costo y precio de lista de un producto
// y agrega la fila de historial en la misma transacción.
type PricingUseCase struct {
	txRunner PricingTxRunner
	clock    func() time.Time
}

// NewPricingUseCase construye el caso de uso.
func NewPricingUseCase(txRunner PricingTxRunner, settings reporting.Settings) *PricingUseCase {
	return &PricingUseCase{txRunner: txRunner, clock: settings.Now}
}

// UpdateProductPricing bloquea la fila del producto (SELECT FOR UPDATE), la actualiza y agrega
// el historial. Valores negativos o fecha inválida -> ErrInvalidInput; producto inexistente ->
// ErrNotFound. Cualquier fallo deja la transacción en Rollback.
func (uc *PricingUseCase) UpdateProductPricing(ctx context.Context, code string, in dto.UpdatePricingRequest) (*dto.ProductDetailDTO, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("pricing.Update: %w", domain.ErrNotFound)
	}
	if (in.Cost != nil && in.Cost.IsNegative()) || (in.ListPrice != nil && in.ListPrice.IsNegative()) {
		return nil, fmt.Errorf("pricing.Update: valores negativos: %w", domain.ErrInvalidInput)
	}

	now := uc.clock()
	effective := now
	if s := strings.TrimSpace(in.EffectiveDate); s != "" {
		d, err := time.ParseInLocation(time.DateOnly, s, now.Location())
		if err != nil {
			return nil, fmt.Errorf("pricing.Update: fecha %q: %w", s, domain.ErrInvalidInput)
		}
		effective = d
	}

	var updated *entity.Product
	err := uc.txRunner.RunPricing(ctx, func(
		productRepo repository.ProductRepository,
		historyRepo repository.PriceHistoryRepository,
	) error {
		p, err := productRepo.GetForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := productRepo.UpdatePricing(ctx, code, in.Cost, in.ListPrice); err != nil {
			return err
		}
		if err := historyRepo.Append(ctx, &entity.ProductPriceHistory{
			ID:            uuid.NewString(),
			ProductCode:   code,
			Cost:          in.Cost,
			ListPrice:     in.ListPrice,
			EffectiveDate: effective,
			Notes:         strings.TrimSpace(in.Notes),
			CreatedAt:     now,
		}); err != nil {
			return err
		}
		p.Cost, p.ListPrice, p.UpdatedAt = in.Cost, in.ListPrice, now
		updated = p
		return nil
	})
	if err != nil {
		return nil, reporting.StoreError("pricing.Update", err)
	}

	margin := report.MarginPercent(updated.ListPrice, updated.Cost)
	return &dto.ProductDetailDTO{
		ProductCode:     updated.ProductCode,
		Name:            updated.Name,
		Description:     updated.Description,
		Family:          updated.Family,
		MaterialType:    updated.MaterialType,
		Cost:            updated.Cost,
		ListPrice:       updated.ListPrice,
		MarginPct:       margin,
		MarginDisplay:   format.Percent(margin, 1),
		UnitsPerPackage: updated.UnitsPerPackage,
		ReorderPoint:    updated.ReorderPoint,
		UpdatedAt:       updated.UpdatedAt,
	}, nil
}
