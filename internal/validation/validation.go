package validation

import (
	"bytes"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

var registerOnce sync.Once

// registerTagNames makes validator report the json or uri name of a field
// instead of the Go struct field name.
func registerTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

var errNotJSONObject = errors.New("request body must be a JSON object")

// BindAndValidateJSON only accepts a JSON object body. A bare null would
// otherwise decode into dst as a no-op.
func BindAndValidateJSON(c *gin.Context, dst any) bool {
	registerTagNames()

	body, err := c.GetRawData()
	if err != nil {
		abortWithBindError(c, err, "invalid request body")
		return false
	}

	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		abortWithBindError(c, errNotJSONObject, "invalid request body")
		return false
	}

	if err := binding.JSON.BindBody(body, dst); err != nil {
		abortWithBindError(c, err, "invalid request body")
		return false
	}

	return true
}

// BindAndValidateURI binds path parameters such as :id.
func BindAndValidateURI(c *gin.Context, dst any) bool {
	registerTagNames()

	if err := c.ShouldBindUri(dst); err != nil {
		abortWithBindError(c, err, "invalid path parameters")
		return false
	}

	return true
}

// AbortWithFieldError rejects the request with a single-field validation
// failure, for checks that run outside the validator.
func AbortWithFieldError(c *gin.Context, field, rule, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors: []FieldError{
			{Field: field, Rule: rule, Message: message},
		},
	})
}

func abortWithBindError(c *gin.Context, err error, syntaxMessage string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, formatValidationErrors(verrs))
		return
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeInvalidRequestBody,
		Message: syntaxMessage,
		Errors: []FieldError{
			{
				Field:   "",
				Rule:    "syntax",
				Message: err.Error(),
			},
		},
	})
}

func formatValidationErrors(verrs validator.ValidationErrors) ErrorResponse {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		jsonField := toJSONFieldName(fe.Field())
		fields = append(fields, FieldError{
			Field:   jsonField,
			Rule:    fe.Tag(),
			Message: buildMessage(jsonField, fe),
		})
	}

	return ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors:  fields,
	}
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "uuid":
		return field + " must be a valid UUID"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}
