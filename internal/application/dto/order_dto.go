package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRowDTO fila del listado de órdenes.
type OrderRowDTO struct {
	ID                 string          `json:"id"`
	OrderNumber        string          `json:"order_number"`
	OrderDate          time.Time       `json:"order_date"`
	DaysAgo            int             `json:"days_ago"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	TotalAmountDisplay string          `json:"total_amount_display"`
	Status             string          `json:"status"`
	PaymentStatus      string          `json:"payment_status"`
	Channel            string          `json:"channel"`
	CustomerID         string          `json:"customer_id"`
	CustomerName       string          `json:"customer_name"`
	CompanyName        *string         `json:"company_name"`
	PrimaryEmail       *string         `json:"primary_email"`
	ItemCount          int64           `json:"item_count"`
}

// OrderDetailDTO orden con sus líneas.
type OrderDetailDTO struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	OrderDate     time.Time          `json:"order_date"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Channel       string             `json:"channel"`
	CustomerID    string             `json:"customer_id"`
	Items         []OrderLineItemDTO `json:"items"`
}

// OrderLineItemDTO línea de orden.
type OrderLineItemDTO struct {
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineAmount  decimal.Decimal `json:"line_amount"`
}
