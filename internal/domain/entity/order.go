package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order orden de venta. TotalAmount >= 0 y OrderDate siempre presente.
type Order struct {
	ID            string
	OrderNumber   string
	OrderDate     time.Time
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	Channel       string // web, phone, marketplace, ...
	CustomerID    string
	Items         []OrderLineItem
}

// OrderLineItem línea de una orden. LineAmount ≈ Quantity × UnitPrice.
type OrderLineItem struct {
	ID          string
	OrderID     string
	ProductCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineAmount  decimal.Decimal
}
