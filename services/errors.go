package services

import "fmt"

// ValidationError indicates bad input: an empty required field, a
// non-positive quantity or a reference to an unknown entity. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TableConflictError indicates an attempt to place an order against a
// table that is already occupied.
type TableConflictError struct {
	TableNumber int
}

func (e *TableConflictError) Error() string {
	return fmt.Sprintf("table %d is already occupied", e.TableNumber)
}

// InvalidStatusError indicates a status value outside the recognized set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid order status %q", e.Status)
}

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// IntegrityError indicates a delete blocked by existing references,
// e.g. a menu item with order history. The message names the
// referencing entity so the caller can explain the rejection.
type IntegrityError struct {
	Message string
}

func (e *IntegrityError) Error() string {
	return e.Message
}
