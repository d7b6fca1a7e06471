package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o exceden el máximo.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas. Total cuenta todas las filas del filtro.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Response arma los metadatos para una página de n elementos. count se consulta solo si la
// página no alcanza para deducir el total: página llena, o vacía con Offset > 0.
func (p PageRequest) Response(n int, count func() (int, error)) (PageResponse, error) {
	out := PageResponse{Limit: p.Limit, Offset: p.Offset, Total: p.Offset + n}
	if (n > 0 || p.Offset == 0) && (p.Limit <= 0 || n < p.Limit) {
		return out, nil
	}
	total, err := count()
	if err != nil {
		return PageResponse{}, err
	}
	out.Total = total
	return out, nil
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo propio.
type MessageResponse struct {
	Message string `json:"message"`
}
