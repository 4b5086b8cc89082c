package handler

import (
	"net/http"
	"reflect"

	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apierror"
	"github.com/AndersonnReinaldo/g5-distribuidora-api/internal/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
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
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service error onto the HTTP status for its kind:
// Validation → 400, NotFound → 404, Conflict → 409, Processing → 500.
// Register state conflicts carry their numeric code through to the client.
func respondError(c *gin.Context, err error) {
	e, ok := apperror.As(err)
	if !ok {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
		return
	}

	switch e.Kind {
	case apperror.KindValidation:
		c.JSON(http.StatusBadRequest, apierror.New(e.Message))
	case apperror.KindNotFound:
		c.JSON(http.StatusNotFound, apierror.New(e.Message))
	case apperror.KindConflict:
		if e.Codigo != 0 {
			c.JSON(http.StatusConflict, apierror.WithCode(e.Codigo, e.Message))
			return
		}
		c.JSON(http.StatusConflict, apierror.New(e.Message))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New(e.Message))
	}
}
