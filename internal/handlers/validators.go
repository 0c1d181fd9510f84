package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gitala/gitala_branch/internal/utils"
)

// registerCustomValidators adds the phone-format rule to gin's binding engine
// so requests fail fast before reaching the services.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ugphone", func(fl validator.FieldLevel) bool {
			_, err := utils.NormalizePhone(fl.Field().String())
			return err == nil
		})
	}
}
