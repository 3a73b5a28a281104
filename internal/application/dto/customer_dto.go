package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRowDTO fila del listado de clientes.
type CustomerRowDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CompanyName       *string         `json:"company_name"`
	PrimaryEmail      *string         `json:"primary_email"`
	PrimaryPhone      *string         `json:"primary_phone"`
	OrderCount        int64           `json:"order_count"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	TotalSpentDisplay string          `json:"total_spent_display"`
	LastOrderDate     *time.Time      `json:"last_order_date"`
	LastOrderDisplay  string          `json:"last_order_display"`
}

// CustomerDetailDTO ficha del cliente.
type CustomerDetailDTO struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	CompanyID       *string           `json:"company_id"`
	EmailMarketable bool              `json:"email_marketable"`
	PrimaryEmail    string            `json:"primary_email"`
	Emails          []ContactEmailDTO `json:"emails"`
	Phones          []ContactPhoneDTO `json:"phones"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ContactEmailDTO correo de contacto.
type ContactEmailDTO struct {
	Email     string `json:"email"`
	IsPrimary bool   `json:"is_primary"`
}

// ContactPhoneDTO teléfono de contacto.
type ContactPhoneDTO struct {
	Phone     string `json:"phone"`
	IsPrimary bool   `json:"is_primary"`
}
