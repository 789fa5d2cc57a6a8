// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format types for output.
type Format string

const (
	// FormatText represents plain key/value output.
	FormatText Format = "text"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the appropriate formatter for format, defaulting to
// plain text for anything unrecognized.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(data)
}

// TextFormatter renders a struct as aligned "Label: value" lines, deriving
// labels from json tags title-cased for display. Slices render one element
// per block separated by a blank line.
type TextFormatter struct{}

// Format implements the Formatter interface for text output.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := f.Format(w, v.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	if v.Kind() != reflect.Struct {
		_, err := fmt.Fprintln(w, data)
		return err
	}

	caser := cases.Title(language.English)
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		label, omitEmpty := fieldLabel(field, caser)
		value := v.Field(i)
		if omitEmpty && value.IsZero() {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-16s %v\n", label+":", value.Interface()); err != nil {
			return err
		}
	}
	return nil
}

// fieldLabel derives a display label from the field's json tag, falling
// back to the Go field name.
func fieldLabel(field reflect.StructField, caser cases.Caser) (string, bool) {
	tag := field.Tag.Get("json")
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		name = field.Name
	}
	label := caser.String(strings.ReplaceAll(name, "_", " "))
	return label, strings.Contains(opts, "omitempty")
}
