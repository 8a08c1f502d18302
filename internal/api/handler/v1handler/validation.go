package v1handler

import (
	"errors"
	"net/url"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"usersvc/pkg/serrors"

	"github.com/go-playground/validator/v10"
)

const (
	defaultOffset = 0
	defaultLimit  = 5

	invalidRequestMessage = "Invalid request data"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string
	Message string
	Type    string
}

// ValidationErrors is the error returned for requests failing validation.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}

	return strings.Join(parts, "; ")
}

func invalidRequest(details ValidationErrors) error {
	return serrors.Wrap(serrors.ErrInvalidArgument, details, invalidRequestMessage)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short, at least " + fe.Param() + " characters are required"
	case "max":
		return "Value is too long, at most " + fe.Param() + " characters are allowed"
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "lte":
		return "Value must be less than or equal to " + fe.Param()
	default:
		return "Invalid value"
	}
}

// validateStruct runs the validate tags of obj and converts failures into an
// invalid argument fault carrying ValidationErrors.
func (h *Handler) validateStruct(obj any) error {
	err := h.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return serrors.Wrap(serrors.ErrInvalidArgument, err, invalidRequestMessage)
	}

	details := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Type:    fe.Tag(),
		})
	}

	return invalidRequest(details)
}

type paginationQuery struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit"  validate:"gte=0,lte=1000"`
}

// queryKeys returns the keys of q with offset and limit first, then the rest
// sorted, so reported details keep a stable order.
func queryKeys(q url.Values) []string {
	keys := make([]string, 0, len(q))
	for key := range q {
		if key != "offset" && key != "limit" {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, known := range []string{"limit", "offset"} {
		if _, ok := q[known]; ok {
			keys = slices.Insert(keys, 0, known)
		}
	}

	return keys
}

// parsePagination reads offset and limit from the query string. Other
// parameters are rejected.
func (h *Handler) parsePagination(q url.Values) (paginationQuery, error) {
	p := paginationQuery{Offset: defaultOffset, Limit: defaultLimit}

	var details ValidationErrors
	for _, key := range queryKeys(q) {
		values := q[key]
		var dst *int
		switch key {
		case "offset":
			dst = &p.Offset
		case "limit":
			dst = &p.Limit
		default:
			details = append(details, ValidationError{
				Field:   key,
				Message: "Extra inputs are not permitted",
				Type:    "extra_forbidden",
			})

			continue
		}

		n, err := strconv.Atoi(values[0])
		if err != nil {
			details = append(details, ValidationError{
				Field:   key,
				Message: "Value must be a valid integer",
				Type:    "int_parsing",
			})

			continue
		}
		*dst = n
	}
	if len(details) > 0 {
		return p, invalidRequest(details)
	}

	return p, h.validateStruct(p)
}
