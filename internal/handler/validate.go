package handler

import (
	"reflect"
	"strings"
	"sync"

	"Mala_Admin/internal/pkg"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	tagPhone   = "phone10"
	tagAadhaar = "aadhaar"
	tagLetters = "letters"
	tagDMYDate = "dmydate"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags on gin's validator and
// makes error messages use json or form field names.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
		for tag, check := range map[string]func(string) bool{
			tagPhone:   pkg.IsPhone,
			tagAadhaar: pkg.IsAadhaar,
			tagLetters: pkg.IsLetters,
			tagDMYDate: func(s string) bool { _, err := pkg.ParseDMY(s); return err == nil },
		} {
			err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			})
			if err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}
