package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingValidators installs the catalog's custom binding rules on
// gin's validator engine.
func RegisterBindingValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// isbn_shape accepts ISBN-10/13 with or without hyphens. Checksum digits
	// are deliberately not verified; legacy catalogs carry invalid ones.
	_ = v.RegisterValidation("isbn_shape", func(fl validator.FieldLevel) bool {
		return IsISBN(fl.Field().String())
	})
}
