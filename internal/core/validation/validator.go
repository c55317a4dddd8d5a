package validation

import (
	"fmt"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/domain"
)

// Values holds the fields present in a form. Absent fields are not keys.
type Values map[string]interface{}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error lists every failed rule in table order. Its message is the first failure,
// which is what a form shows to the user.
type Error struct {
	Fields []FieldError
	cause  *oaerrors.CompositeError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return domain.ErrValidationFailed.Error()
	}
	return e.Fields[0].Message
}

func (e *Error) Is(target error) bool {
	return target == domain.ErrValidationFailed
}

func (e *Error) Unwrap() error {
	return e.cause
}

type Validator struct {
	validate *validator.Validate
}

func New(validate *validator.Validate) *Validator {
	if validate == nil {
		validate = validator.New()
	}
	return &Validator{validate: validate}
}

// Check evaluates table against values. With partial set, rules for absent
// fields are skipped; otherwise an absent required field fails its rule.
func (v *Validator) Check(table Table, values Values, partial bool) error {
	var fields []FieldError
	var causes []error

	for _, rule := range table {
		value, present := values[rule.Field]
		if !present {
			if rule.Required && !partial {
				fields = append(fields, FieldError{Field: rule.Field, Message: rule.Message})
				causes = append(causes, oaerrors.Required(rule.Field, "body", nil))
			}
			continue
		}
		if err := v.checkRule(rule, value); err != nil {
			fields = append(fields, FieldError{Field: rule.Field, Message: rule.Message})
			causes = append(causes, err)
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields, cause: oaerrors.CompositeValidationError(causes...)}
}

func (v *Validator) checkRule(rule Rule, value interface{}) error {
	if rule.Pattern != "" {
		if res := validate.Pattern(rule.Field, "body", fmt.Sprint(value), rule.Pattern); res != nil {
			return res
		}
		return nil
	}
	if rule.Tag != "" {
		if err := v.validate.Var(value, rule.Tag); err != nil {
			return oaerrors.New(oaerrors.CompositeErrorCode, "%s: %v", rule.Field, err)
		}
	}
	return nil
}

func (v *Validator) Vehicle(in *domain.VehicleInput, partial bool) error {
	return v.Check(VehicleRules, VehicleValues(in), partial)
}

func (v *Validator) Workshop(in *domain.WorkshopInput, partial bool) error {
	return v.Check(WorkshopRules, WorkshopValues(in), partial)
}

func (v *Validator) ServiceRecord(in *domain.ServiceRecordInput, partial bool) error {
	return v.Check(ServiceRecordRules, ServiceRecordValues(in), partial)
}

func (v *Validator) Registration(reg domain.Registration) error {
	return v.Check(RegistrationRules, Values{
		"nombres":   reg.Nombres,
		"apellidos": reg.Apellidos,
		"email":     reg.Email,
		"password":  reg.Password,
	}, false)
}

// Profile treats an empty password as "unchanged".
func (v *Validator) Profile(in *domain.UserInput) error {
	values := UserValues(in)
	if p, ok := values["password"]; ok && p == "" {
		delete(values, "password")
	}
	return v.Check(ProfileRules, values, false)
}

func (v *Validator) User(in *domain.UserInput) error {
	values := UserValues(in)
	delete(values, "password")
	return v.Check(UserRules, values, false)
}
