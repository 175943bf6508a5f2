package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/martinmorag/manejo-de-empresas/internal/apierror"
	"github.com/martinmorag/manejo-de-empresas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var fields []apierror.FieldError
		for _, fe := range err.(validator.ValidationErrors) {
			fields = append(fields, apierror.FieldError{
				Path:    strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un correo electrónico válido"
	case "uuid":
		return "debe ser un UUID válido"
	case "min":
		return "es demasiado corto o pequeño (mínimo " + fe.Param() + ")"
	case "max":
		return "es demasiado largo o grande (máximo " + fe.Param() + ")"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "datetime":
		return "debe tener el formato " + fe.Param()
	default:
		return "no cumple la restricción " + fe.Tag()
	}
}

// respondServiceError translates service-layer errors into HTTP responses.
// *service.Error carries its own status; anything else is a 500 with a
// generic body.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Status, apierror.New(svcErr.Message))
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected service error")
	c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
}

// clientIPFrom extracts the caller's address for the login audit trail,
// preferring proxy headers over the socket address. X-Forwarded-For may
// carry a chain; the first entry is the original client.
func clientIPFrom(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if real := c.GetHeader("X-Real-Ip"); real != "" {
		return real
	}
	if cf := c.GetHeader("Cf-Connecting-Ip"); cf != "" {
		return cf
	}
	return c.ClientIP()
}
