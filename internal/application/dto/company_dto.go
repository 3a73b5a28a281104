package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRowDTO fila del listado de empresas.
type CompanyRowDTO struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Domain              string          `json:"domain"`
	Enriched            bool            `json:"enriched"`
	CustomerCount       int64           `json:"customer_count"`
	OrderCount          int64           `json:"order_count"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueDisplay string          `json:"total_revenue_display"`
	LastOrderDate       *time.Time      `json:"last_order_date"`
	LastOrderDisplay    string          `json:"last_order_display"`
}

// CompanyDetailDTO ficha de la empresa con el JSON de enriquecimiento tal cual.
type CompanyDetailDTO struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Domain     string          `json:"domain"`
	Enrichment json.RawMessage `json:"enrichment"`
	CreatedAt  time.Time       `json:"created_at"`
}
