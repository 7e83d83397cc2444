package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Detail string            `json:"detail,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respond maps an error onto its HTTP status and payload. The error is also
// recorded on the context for the request logger.
func respond(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := classify(err)
	c.AbortWithStatusJSON(status, body)
}

func classify(err error) (int, errorResponse) {
	var (
		verr    *domain.ValidationError
		rng     *domain.SeatOutOfRangeError
		booked  *domain.SeatAlreadyBookedError
		badDate *query.BadDateFormatError
		fields  validator.ValidationErrors
		syntax  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, invalid(verr.Fields)
	case errors.As(err, &rng):
		return http.StatusBadRequest, invalid(map[string]string{rng.Field: rng.Error()})
	case errors.As(err, &badDate):
		return http.StatusBadRequest, invalid(map[string]string{badDate.Field: badDate.Error()})
	case errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, invalid(map[string]string{"tickets": err.Error()})
	case errors.As(err, &fields):
		return http.StatusBadRequest, invalid(fieldMessages(fields))
	case errors.As(err, &typeErr):
		return http.StatusBadRequest, invalid(map[string]string{typeErr.Field: fmt.Sprintf("expected %s", typeErr.Type)})
	case errors.As(err, &syntax), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, errorResponse{Error: "parse_error", Detail: "malformed request body"}
	case errors.As(err, &booked):
		return http.StatusConflict, errorResponse{Error: "conflict", Detail: booked.Error(),
			Fields: map[string]string{"tickets": booked.Error()}}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Error: "conflict", Detail: "object already exists"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Detail: "not found"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Detail: err.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden", Detail: err.Error()}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Detail: "internal server error"}
}

func invalid(fields map[string]string) errorResponse {
	return errorResponse{Error: "validation_error", Fields: fields}
}

func fieldMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		key := fe.Namespace()
		if _, rest, ok := strings.Cut(key, "."); ok {
			key = rest
		}
		if _, exists := out[key]; !exists {
			out[key] = fieldMessage(fe)
		}
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	case "nefield":
		return fmt.Sprintf("must differ from %s", snake(fe.Param()))
	case "gtfield":
		return fmt.Sprintf("must be later than %s", snake(fe.Param()))
	}
	return fe.Error()
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// useJSONFieldNames makes validation errors report the json names of fields.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}
