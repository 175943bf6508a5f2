package dto

type MensajeSoporteRequest struct {
	Name        string `json:"name"         validate:"required,min=1,max=100"`
	Lastname    string `json:"lastname"     validate:"required,min=1,max=100"`
	Email       string `json:"email"        validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=30"`
	Subject     string `json:"subject"      validate:"required,min=1,max=255"`
	Message     string `json:"message"      validate:"required,min=1,max=2000"`
}
