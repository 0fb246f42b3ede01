package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
)

// Custom binding tags for billing requests
const (
	TagPaymentMethod  = "payment_method"
	TagSettableStatus = "settable_status"
)

// SetupValidator names fields after their json (or form) tag and registers the billing tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	RegisterBillingValidations(v)
}

// RegisterBillingValidations installs the field naming and custom tags on v
func RegisterBillingValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation(TagPaymentMethod, func(fl validator.FieldLevel) bool {
		return billing.PaymentMethod(fl.Field().String()).IsValid()
	})
	// Only paid and unpaid may be set by hand; partial and overdue are derived.
	_ = v.RegisterValidation(TagSettableStatus, func(fl validator.FieldLevel) bool {
		switch billing.PaymentStatus(fl.Field().String()) {
		case billing.PaymentStatusPaid, billing.PaymentStatusUnpaid:
			return true
		}
		return false
	})
}

// FormatValidationErrors converts validator errors into the standard error envelope
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: getValidationMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 with per-field details
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDContextKey)))
}

var validationMessages = map[string]func(fe validator.FieldError) string{
	"required": func(validator.FieldError) string { return "This field is required" },
	"uuid":     func(validator.FieldError) string { return "Invalid UUID format" },
	"oneof":    func(fe validator.FieldError) string { return "Must be one of: " + fe.Param() },
	"gte":      func(fe validator.FieldError) string { return "Must be greater than or equal to " + fe.Param() },
	"gt":       func(fe validator.FieldError) string { return "Must be greater than " + fe.Param() },
	"lte":      func(fe validator.FieldError) string { return "Must be less than or equal to " + fe.Param() },
	"datetime": func(fe validator.FieldError) string { return "Must be a date in format " + fe.Param() },
	"min":      func(fe validator.FieldError) string { return boundMessage("at least", fe) },
	"max":      func(fe validator.FieldError) string { return boundMessage("at most", fe) },
	TagPaymentMethod: func(validator.FieldError) string {
		return "Must be one of: cash bank_transfer e_wallet"
	},
	TagSettableStatus: func(validator.FieldError) string {
		return "Status can only be set to paid or unpaid"
	},
}

func getValidationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return msg(fe)
	}
	return "Invalid value"
}

func boundMessage(bound string, fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return "Must be " + bound + " " + fe.Param() + " characters"
	}
	return "Must be " + bound + " " + fe.Param()
}
