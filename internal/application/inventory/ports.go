package inventory

import (
	"context"

	"github.com/jhoicas/Tablero-api/internal/application/dto"
	"github.com/jhoicas/Tablero-api/internal/domain/repository"
)

// PricingTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Garantiza que la actualización del producto y la fila de historial se confirmen juntas.
type PricingTxRunner interface {
	RunPricing(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		historyRepo repository.PriceHistoryRepository,
	) error) error
}

// ReorderPDFGenerator genera el PDF del plan de reposición.
type ReorderPDFGenerator interface {
	GenerateReorderPlan(plan *dto.ReorderPlanDTO) ([]byte, error)
}
