package entity

import (
	"encoding/json"
	"time"
)

// Company empresa cliente, única por dominio. Enrichment es el JSON opaco de enriquecimiento
// externo (industria, tamaño, ...); nil si no se ha enriquecido.
type Company struct {
	ID         string
	Name       string
	Domain     string
	Enrichment json.RawMessage
	CreatedAt  time.Time
}

// IsEnriched indica si la empresa tiene datos de enriquecimiento.
func (c *Company) IsEnriched() bool {
	return len(c.Enrichment) > 0 && string(c.Enrichment) != "null"
}
