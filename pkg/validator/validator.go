package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse describe un campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Reportar los campos con su nombre JSON (product_id, no ProductID); en filtros, el de query.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = f.Tag.Get("query")
		}
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct valida data según sus tags `validate`; nil si es válido.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
	}
	out := make([]*ErrorResponse, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &ErrorResponse{
			FailedField: trimRoot(fe.Namespace()),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}

// Fields resume los errores como campo → regla, para el cuerpo de la respuesta HTTP.
func Fields(errs []*ErrorResponse) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		rule := e.Tag
		if e.Value != "" {
			rule += "=" + e.Value
		}
		out[e.FailedField] = rule
	}
	return out
}

// trimRoot quita el nombre del struct raíz: "CreateReceiptRequest.lines[0].quantity" → "lines[0].quantity".
func trimRoot(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
