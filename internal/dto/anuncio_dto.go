package dto

type CrearAnuncioRequest struct {
	Message    string  `json:"message"     validate:"required,min=1"`
	FinishedAt *string `json:"finished_at" validate:"omitempty"`
}

type FinalizarAnuncioRequest struct {
	FinishedAt *string `json:"finished_at" validate:"omitempty"`
	Estado     string  `json:"estado"      validate:"omitempty,oneof=Activo Finalizado"`
}

type AnuncioResponse struct {
	ID              string  `json:"id"`
	UsuarioID       string  `json:"usuarioid"`
	UsuarioName     string  `json:"usuario_name"`
	UsuarioLastname string  `json:"usuario_lastname"`
	Message         string  `json:"message"`
	CreatedAt       string  `json:"created_at"`
	FinishedAt      *string `json:"finished_at"`
	Estado          string  `json:"estado"`
}
