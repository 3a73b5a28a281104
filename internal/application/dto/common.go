package dto

// ListResponse respuesta de cualquier listado paginado.
type ListResponse[T any] struct {
	Rows       []T   `json:"rows"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// PeriodDTO ventana resuelta (fechas YYYY-MM-DD). StartDate es nil para "all" y las fechas
// de comparación son nil cuando no hay ventana anterior.
type PeriodDTO struct {
	Key              string  `json:"key"`
	StartDate        *string `json:"start_date"`
	EndDate          string  `json:"end_date"`
	CompareStartDate *string `json:"compare_start_date"`
	CompareEndDate   *string `json:"compare_end_date"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
