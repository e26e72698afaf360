package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every constraint a request body violated.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Decode parses body into the form for kind and validates it. It never touches
// the store. Failures are returned as *ValidationError.
func Decode(kind Kind, body []byte) (Form, error) {
	var f Form
	switch kind {
	case KindInquiry:
		f = &Inquiry{}
	case KindContact:
		f = &ContactMessage{}
	default:
		return nil, fmt.Errorf("unknown form kind %d", kind)
	}
	if err := bind(body, f); err != nil {
		return nil, err
	}
	return f, nil
}

func bind(body []byte, obj any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "required", Message: "request body is required"}}}
	}
	// gin decodes the first JSON value and ignores the rest
	if !json.Valid(body) {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "json", Message: "request body is not valid JSON"}}}
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "type", Message: "must be of type object"}}}
	}

	out := &ValidationError{Fields: typeErrors(obj, raw)}
	err := binding.JSON.BindBody(body, obj)
	if err == nil && len(out.Fields) == 0 {
		return nil
	}

	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case err == nil, errors.As(err, &verrs):
	case errors.As(err, &typeErr):
		if len(out.Fields) == 0 {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			out.Fields = append(out.Fields, FieldError{Field: field, Rule: "type", Message: "must be of type " + jsonTypeName(typeErr.Type)})
		}
		// decoding carried on past the type error; validate what was decoded
		err = binding.Validator.ValidateStruct(obj)
	default:
		return &ValidationError{Fields: []FieldError{{Field: "body", Rule: "invalid", Message: err.Error()}}}
	}
	if errors.As(err, &verrs) {
		for _, fe := range fieldErrors(verrs) {
			if !out.Has(fe.Field) {
				out.Fields = append(out.Fields, fe)
			}
		}
	}
	return out
}

// typeErrors checks every present, non-null member of raw against the kind of
// the struct field it decodes into. encoding/json stops reporting after the
// first mismatch, so each field is checked here.
func typeErrors(obj any, raw map[string]json.RawMessage) []FieldError {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var out []FieldError
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		v, ok := raw[jsonFieldName(fld)]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || string(v) == "null" {
			continue
		}
		ft := fld.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.String && v[0] != '"' {
			out = append(out, FieldError{
				Field:   jsonFieldName(fld),
				Rule:    "type",
				Message: "must be of type " + jsonTypeName(fld.Type),
			})
		}
	}
	return out
}

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: ruleMessage(fe)})
	}
	return out
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "max":
		return "ensure this value has at most " + fe.Param() + " characters"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	}
	return t.Kind().String()
}
