package dto

type ActualizarPerfilRequest struct {
	Name         *string `json:"name"          validate:"omitempty,min=1,max=100"`
	Lastname     *string `json:"lastname"      validate:"omitempty,min=1,max=100"`
	ProfileImage *string `json:"profile_image" validate:"omitempty,max=2048"`
}

// ActualizarSeguridadRequest changes email and/or password. OldPassword is
// mandatory whenever a new password is supplied.
type ActualizarSeguridadRequest struct {
	NewEmail    *string `json:"new_email"    validate:"omitempty,email"`
	NewPassword *string `json:"new_password" validate:"omitempty,min=8"`
	OldPassword *string `json:"old_password" validate:"omitempty,min=8"`
}
