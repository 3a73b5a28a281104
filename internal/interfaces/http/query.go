package http

import "github.com/gofiber/fiber/v2"

// queryValues devuelve la query string cruda como mapa multi-valor (orden de llegada).
// La normalización de cada parámetro es responsabilidad del reporte.
func queryValues(c *fiber.Ctx) map[string][]string {
	out := make(map[string][]string)
	c.Request().URI().QueryArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		out[key] = append(out[key], string(v))
	})
	return out
}
