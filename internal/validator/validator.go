package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinex-booking/internal/booking"
	"github.com/metinatakli/cinex-booking/internal/payment"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("card_field", validateCardField)
	validator.RegisterValidation("booking_step", validateBookingStep)

	return validator
}

func validateCardField(fl validator.FieldLevel) bool {
	switch payment.Field(fl.Field().String()) {
	case payment.FieldCardNumber, payment.FieldExpiry, payment.FieldCVV:
		return true
	}

	return false
}

func validateBookingStep(fl validator.FieldLevel) bool {
	switch booking.Step(fl.Field().String()) {
	case booking.StepShowtime, booking.StepSeats, booking.StepSnacks, booking.StepPayment, booking.StepTicket:
		return true
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	case "card_field":
		return "must be one of cardNumber, expiry, cvv"
	case "booking_step":
		return "must be a booking step"
	default:
		return "is invalid"
	}
}
