package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// PromptError is a recoverable, user-facing failure. Code is the HTTP status
// the API answers with; Prompt marks a confirm/cancel question rather than a
// rejection.
type PromptError struct {
	Code    int
	Message string
	Prompt  bool
}

func (e *PromptError) Error() string {
	return e.Message
}

func newPrompt(code int, message string) *PromptError {
	return &PromptError{Code: code, Message: message}
}

var (
	ErrInvalidQuantity         = newPrompt(http.StatusBadRequest, "please enter a valid quantity")
	ErrInvalidVerificationCode = newPrompt(http.StatusUnauthorized, "invalid verification code")
	ErrProductNotFound         = newPrompt(http.StatusNotFound, "product not found")
	ErrNotInCart               = newPrompt(http.StatusNotFound, "product is not in the cart")
	ErrAlreadyInCart           = &PromptError{Code: http.StatusConflict, Message: "product is already in the cart", Prompt: true}
	ErrAlreadyInFavorites      = &PromptError{Code: http.StatusConflict, Message: "product is already in favorites", Prompt: true}
	ErrStockLimit              = newPrompt(http.StatusBadRequest, "quantity exceeds stock")
)

// StockLimitError reports a quantity above the available stock.
type StockLimitError struct {
	Max int
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("maximum stock quantity: %d", e.Max)
}

func (e *StockLimitError) Unwrap() error { return ErrStockLimit }

// duplicateError names the product in an already-present prompt while still
// matching the sentinel with errors.Is.
type duplicateError struct {
	sentinel *PromptError
	name     string
	where    string
}

func (e *duplicateError) Error() string {
	return fmt.Sprintf("%s is already in %s", e.name, e.where)
}

func (e *duplicateError) Unwrap() error { return e.sentinel }

// AsPrompt unwraps err to the PromptError the API should render. Errors that
// carry their own message keep it.
func AsPrompt(err error) (*PromptError, bool) {
	var pe *PromptError
	if !errors.As(err, &pe) {
		return nil, false
	}
	if err.Error() == pe.Message {
		return pe, true
	}
	return &PromptError{Code: pe.Code, Message: err.Error(), Prompt: pe.Prompt}, true
}
