package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/pickupkart/internal/services"
)

// mapServiceError translates service sentinels into stable HTTP statuses.
// Unknown errors pass through to fiber's default handler as a 500.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrDuplicateLogin),
		errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrUnknownRole),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrUnknownCourier),
		errors.Is(err, services.ErrUnknownCustomer),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrCustomNameRequired),
		errors.Is(err, services.ErrInvalidPaymentMode):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrPaymentNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrIllegalTransition),
		errors.Is(err, services.ErrPaymentExists),
		errors.Is(err, services.ErrOrderNotPayable),
		errors.Is(err, services.ErrIllegalPaymentTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		// The wrapped driver message stays server-side.
		return fiber.NewError(fiber.StatusServiceUnavailable, services.ErrStoreUnavailable.Error())
	}
	return err
}
