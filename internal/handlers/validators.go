package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the transaction binding tags to gin's validator:
// txkind accepts a known transaction kind, txcategory a known category.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("txkind", validateKind); err != nil {
			return
		}
		err = v.RegisterValidation("txcategory", validateCategory)
	})
	return err
}

func validateKind(fl validator.FieldLevel) bool {
	return domain.TransactionKind(fl.Field().String()).IsValid()
}

func validateCategory(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).IsValid()
}
