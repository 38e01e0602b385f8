// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type requestValidator struct {
	validate *playground.Validate
}

// New builds the struct validator installed on the echo server.
func New() echo.Validator {
	return &requestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate runs struct tag validation on a bound request payload.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
