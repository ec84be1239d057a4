package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrConflict signals the order's current state forbids the change.
	ErrConflict = errors.New("order state conflict")
	// ErrReferenceNotFound signals a member or item named by a command does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAlreadyDelivered) ||
		errors.Is(err, domain.ErrAlreadyCancelled) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if errors.Is(err, domain.ErrInvalidMember) ||
		errors.Is(err, domain.ErrMissingDelivery) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidItem) ||
		errors.Is(err, domain.ErrInvalidCount) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, catalogdomain.ErrNotEnoughStock) ||
		errors.Is(err, catalogdomain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
