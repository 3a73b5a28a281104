package report

import "strings"

// Dimension eje de agrupación de un desglose.
type Dimension string

const (
	DimensionChannel  Dimension = "channel"
	DimensionSegment  Dimension = "segment"
	DimensionFamily   Dimension = "family"
	DimensionMaterial Dimension = "material"
	DimensionCompany  Dimension = "company"
)

// Claves de segmento de cliente.
const (
	SegmentBusiness = "business"
	SegmentConsumer = "consumer"
)

// Dimensions en el orden en que se ofrecen.
var Dimensions = []Dimension{DimensionChannel, DimensionSegment, DimensionFamily, DimensionMaterial, DimensionCompany}

// ParseDimension valida el nombre recibido en la ruta.
func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Dimensions {
		if d == known {
			return d, true
		}
	}
	return "", false
}
