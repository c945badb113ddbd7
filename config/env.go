package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// envBinding ties one config field to the environment variable named by its
// env tag. Tags look like `env:"SOC_SUBJECTS,padded"`; padded keeps the
// whitespace around list items, which subject codes need ("CSE ").
type envBinding struct {
	variable string
	padded   bool
	// path is the field's yaml location, e.g. schedule.page_timeout.
	path  string
	field reflect.Value
}

func envBindings(v reflect.Value, prefix string) []envBinding {
	var bindings []envBinding
	for i := 0; i < v.NumField(); i++ {
		field, structField := v.Field(i), v.Type().Field(i)
		path := yamlName(structField)
		if prefix != "" {
			path = prefix + "." + path
		}

		if field.Kind() == reflect.Struct {
			bindings = append(bindings, envBindings(field, path)...)
			continue
		}
		tag := structField.Tag.Get("env")
		if tag == "" {
			continue
		}
		variable, option, _ := strings.Cut(tag, ",")
		bindings = append(bindings, envBinding{variable: variable, padded: option == "padded", path: path, field: field})
	}
	return bindings
}

func yamlName(field reflect.StructField) string {
	if name, _, _ := strings.Cut(field.Tag.Get("yaml"), ","); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

// applyEnv overrides every bound field whose variable is set.
func applyEnv(config *Config) error {
	for _, binding := range envBindings(reflect.ValueOf(config).Elem(), "") {
		value, ok := os.LookupEnv(binding.variable)
		if !ok {
			continue
		}
		if err := binding.set(value); err != nil {
			return fmt.Errorf("%s (%s): %w", binding.variable, binding.path, err)
		}
	}
	return nil
}

func (b envBinding) set(value string) error {
	switch target := b.field.Addr().Interface().(type) {
	case *string:
		*target = value
	case *bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		*target = parsed
	case *int:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*target = parsed
	case *time.Duration:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q", value)
		}
		*target = parsed
	case *[]string:
		*target = splitList(value, b.padded)
	default:
		return fmt.Errorf("unsupported type %s", b.field.Type())
	}
	return nil
}

// splitList splits a comma separated list and drops blank items.
func splitList(value string, padded bool) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if !padded {
			item = strings.TrimSpace(item)
		}
		items = append(items, item)
	}
	return items
}
