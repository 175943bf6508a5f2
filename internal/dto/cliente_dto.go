package dto

type CrearClienteRequest struct {
	Name    string  `json:"name"    validate:"required,min=1,max=255"`
	Email   string  `json:"email"   validate:"required,email"`
	Phone   *string `json:"phone"   validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=255"`
}

// ActualizarClienteRequest uses the same shape as create; the id travels in
// the URL.
type ActualizarClienteRequest = CrearClienteRequest

type ClienteResponse struct {
	ID        string  `json:"id"`
	NegocioID string  `json:"negocioid"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	CreatedAt string  `json:"created_at"`
}
