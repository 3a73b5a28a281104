package entity

import "time"

// Customer cliente; puede pertenecer a una empresa (CompanyID nil = particular).
type Customer struct {
	ID              string
	Name            string
	CompanyID       *string
	EmailMarketable bool
	Emails          []ContactEmail
	Phones          []ContactPhone
	CreatedAt       time.Time
}

// ContactEmail correo de un cliente; a lo sumo uno es primario.
type ContactEmail struct {
	Email     string
	IsPrimary bool
}

// ContactPhone teléfono de un cliente; a lo sumo uno es primario.
type ContactPhone struct {
	Phone     string
	IsPrimary bool
}

// PrimaryEmail devuelve el correo marcado como primario, o el primero disponible.
func (c *Customer) PrimaryEmail() string {
	for _, e := range c.Emails {
		if e.IsPrimary {
			return e.Email
		}
	}
	if len(c.Emails) > 0 {
		return c.Emails[0].Email
	}
	return ""
}
