package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	// ErrAggregationUnavailable la consulta de agregación falló en el almacén (conexión, timeout,
	// SQL). La presentación muestra "No data available" en lugar del detalle.
	ErrAggregationUnavailable = errors.New("agregación no disponible")
)

// Unavailable envuelve un error del almacén como ErrAggregationUnavailable conservando la causa.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAggregationUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrAggregationUnavailable, err)
}
