// Package inputval validates form input structs declared with struct tags.
//
//	type tableForm struct {
//		TableNo int `validate:"min=1" label:"Table number"`
//	}
//
// Supported rules, comma separated in the validate tag:
//
//	required    non-blank string / non-zero number
//	max=N       string length in runes at most N
//	min=N       number at least N
//	gt=N        number strictly greater than N
//	oneof=a b   string (case-insensitive) is one of the listed values
//	httpurl     string, when present, is an absolute http(s) URL
//
// Messages use the label tag, falling back to the field name.
package inputval

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldError is one failed rule.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures of one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// First returns the first message, or "".
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every tagged field of the struct v (or pointer to one).
// Each field reports at most one error, for its first failing rule.
func Validate(v any) *Result {
	res := &Result{}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return res
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || !f.IsExported() {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		if msg := checkField(rv.Field(i), label, tag); msg != "" {
			res.Errors = append(res.Errors, FieldError{Field: f.Name, Message: msg})
		}
	}
	return res
}

func checkField(fv reflect.Value, label, tag string) string {
	for _, rule := range strings.Split(tag, ",") {
		name, arg, _ := strings.Cut(strings.TrimSpace(rule), "=")
		if msg := apply(fv, label, name, arg); msg != "" {
			return msg
		}
	}
	return ""
}

func apply(fv reflect.Value, label, rule, arg string) string {
	switch fv.Kind() {
	case reflect.String:
		return applyString(fv.String(), label, rule, arg)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return applyNumber(float64(fv.Int()), label, rule, arg)
	case reflect.Float32, reflect.Float64:
		return applyNumber(fv.Float(), label, rule, arg)
	}
	return ""
}

func applyString(s, label, rule, arg string) string {
	trimmed := strings.TrimSpace(s)
	switch rule {
	case "required":
		if trimmed == "" {
			return label + " is required."
		}
	case "max":
		n, _ := strconv.Atoi(arg)
		if utf8.RuneCountInString(trimmed) > n {
			return fmt.Sprintf("%s must be at most %d characters.", label, n)
		}
	case "oneof":
		opts := strings.Fields(arg)
		v := strings.ToLower(trimmed)
		for _, o := range opts {
			if v == o {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s.", label, strings.Join(opts, ", "))
	case "httpurl":
		if trimmed != "" && !IsValidHTTPURL(trimmed) {
			return "A valid http(s) URL is required for " + strings.ToLower(label) + "."
		}
	}
	return ""
}

func applyNumber(v float64, label, rule, arg string) string {
	limit, _ := strconv.ParseFloat(arg, 64)
	switch rule {
	case "required":
		if v == 0 {
			return label + " is required."
		}
	case "min":
		if v < limit {
			return fmt.Sprintf("%s must be at least %s.", label, arg)
		}
	case "gt":
		if v <= limit {
			return fmt.Sprintf("%s must be greater than %s.", label, arg)
		}
	}
	return ""
}

// IsValidHTTPURL reports whether s is an absolute http or https URL with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
