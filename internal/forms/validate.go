package forms

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ruthvic2255/cycle-companion/internal/calendar"
	"github.com/ruthvic2255/cycle-companion/internal/types"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ValidationError is the first rule a draft violates
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report json names so messages and fields match the request body
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// Unset FlexFloats validate as nil pointers so omitempty skips them
		// and a present zero still reaches gt/min.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if f, ok := field.Interface().(types.FlexFloat); ok {
				return f.Ptr()
			}
			return nil
		}, types.FlexFloat{})

		_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
			field := fl.Field()
			switch field.Kind() {
			case reflect.Float32, reflect.Float64:
				f := field.Float()
				return f == math.Trunc(f)
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				return true
			}
			return false
		})

		v.RegisterStructValidation(cycleDatesOrdered, CycleDraft{})

		validate = v
	})
	return validate
}

// cycleDatesOrdered rejects an end date before the start date or more than
// calendar.MaxRangeDays after it. Unparseable dates are left to the field rules.
func cycleDatesOrdered(sl validator.StructLevel) {
	d := sl.Current().Interface().(CycleDraft)
	if d.EndDate == "" {
		return
	}
	start, err := time.Parse(DateLayout, d.StartDate)
	if err != nil {
		return
	}
	end, err := time.Parse(DateLayout, d.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(d.EndDate, "end_date", "EndDate", "endafterstart", "start_date")
		return
	}
	if end.After(start.AddDate(0, 0, calendar.MaxRangeDays)) {
		sl.ReportError(d.EndDate, "end_date", "EndDate", "maxspan", strconv.Itoa(calendar.MaxRangeDays))
	}
}

// Validate checks a draft against its declared rules and returns the first
// violation in field declaration order, or nil.
func Validate(draft interface{}) *ValidationError {
	err := engine().Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Rule: "invalid", Message: "Invalid form data"}
	}

	fe := verrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: message(fe),
	}
}

func message(fe validator.FieldError) string {
	label := Label(fe.Field())
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be a positive number", label)
	case "whole":
		return fmt.Sprintf("%s must be a whole number", label)
	case "datetime":
		return fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "endafterstart":
		return "End date must be on or after start date"
	case "maxspan":
		return fmt.Sprintf("A cycle cannot span more than %s days", fe.Param())
	}
	return fmt.Sprintf("%s is invalid", label)
}

// Label turns a json field name into a sentence-case label
func Label(field string) string {
	words := strings.Fields(strings.ReplaceAll(field, "_", " "))
	if len(words) == 0 {
		return "Field"
	}
	label := strings.Join(words, " ")
	return strings.ToUpper(label[:1]) + label[1:]
}
