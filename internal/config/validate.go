package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/salarytax/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared struct validator. Decimal fields are exposed
// to validator as float64 so the usual numeric tags apply to them.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateSalaryInput checks a SalaryInput before it reaches the calculator
func ValidateSalaryInput(input domain.SalaryInput, table *domain.RegimeTable) error {
	if err := Validator().Struct(input); err != nil {
		return describe(err)
	}
	if _, ok := table.Schedule(input.Regime); !ok {
		return fmt.Errorf("regime must be one of %s", joinRegimes(table.Names()))
	}
	return nil
}

// ValidateEmployeeRecord checks a registry row
func ValidateEmployeeRecord(record domain.EmployeeRecord) error {
	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := Validator().Struct(record); err != nil {
		return describe(err)
	}
	return nil
}

// describe turns validator errors into one readable message
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s cannot be negative", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be positive", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func joinRegimes(names []domain.Regime) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
