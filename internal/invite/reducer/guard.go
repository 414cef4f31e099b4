package reducer

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/festy23/team_invite/internal/invite/model"
)

// FormatGuard rejects text that is not a syntactically valid email address.
func FormatGuard(v *validator.Validate) Guard {
	return func(text string) error {
		if err := v.Var(text, "required,email"); err != nil {
			return fmt.Errorf("%w: %q", model.ErrInvalidFormat, text)
		}
		return nil
	}
}
