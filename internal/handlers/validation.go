package handlers

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the console's custom binding rules to gin's
// validator. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerValidators(binding.Validator.Engine())
	})
	return registerErr
}

func registerValidators(engine interface{}) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding validator engine is %T, want *validator.Validate", engine)
	}
	return v.RegisterValidation("notblank", notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
