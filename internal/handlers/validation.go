package handlers

import (
	"fmt"
	"strings"

	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that also knows the strongpassword tag.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return services.IsStrongPassword(fl.Field().String())
	})
	return v
}

// bind parses the JSON body into dst and validates it. Failures wrap
// services.ErrValidation so respondError answers 400.
func bind(c *fiber.Ctx, v *validator.Validate, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", services.ErrValidation, err)
	}
	if err := v.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("%w: %v", services.ErrValidation, err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return fmt.Errorf("%w: %s", services.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}
