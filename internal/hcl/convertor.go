package hcl

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/lazymod/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Converter is the HCL-specific implementation of the config.Converter
// interface. It binds raw manifest expressions to provider input structs.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeBody evaluates the argument expressions and populates the provided
// input struct using reflection. Fields are matched by their 'lmod' tag; a
// field tagged ',optional' keeps its zero value when the manifest omits the
// argument, any other missing argument is an error.
func (c *Converter) DecodeBody(ctx context.Context, inputStruct any, args map[string]hcl.Expression) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(inputStruct)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() {
		return fmt.Errorf("inputStruct must be a non-nil pointer")
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tagParts := strings.Split(field.Tag.Get("lmod"), ",")
		lookupName := tagParts[0]
		if lookupName == "" || lookupName == "-" {
			continue
		}
		optional := slices.Contains(tagParts[1:], "optional")

		expr, ok := args[lookupName]
		if !ok {
			if optional {
				continue
			}
			return fmt.Errorf("missing required argument %q", lookupName)
		}

		// Manifests are self-contained: expressions are evaluated without an
		// eval context, so references to other modules are rejected here.
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("argument %q: %w", lookupName, diags)
		}

		if err := assignValue(fieldVal, val); err != nil {
			return fmt.Errorf("argument %q: %w", lookupName, err)
		}
	}

	logger.Debug("Arguments decoded.", "input_type", structType.String())
	return nil
}

// assignValue writes a single cty.Value into a Go struct field. Interface
// fields receive the value's natural Go representation; concrete fields go
// through cty conversion so e.g. an HCL object can populate a
// map[string]string.
func assignValue(fieldVal reflect.Value, val cty.Value) error {
	fieldType := fieldVal.Type()

	if isAnyType(fieldType) {
		native, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if native == nil {
			fieldVal.Set(reflect.Zero(fieldType))
			return nil
		}
		fieldVal.Set(reflect.ValueOf(native))
		return nil
	}

	if fieldType.Kind() == reflect.Map && isAnyType(fieldType.Elem()) {
		native, err := ctyToNative(val)
		if err != nil {
			return err
		}
		m, ok := native.(map[string]any)
		if !ok {
			return fmt.Errorf("expected an object, got %s", val.Type().FriendlyName())
		}
		fieldVal.Set(reflect.ValueOf(m))
		return nil
	}

	target, err := gocty.ImpliedType(reflect.Zero(fieldType).Interface())
	if err != nil {
		return fmt.Errorf("could not imply cty type for Go field type %s: %w", fieldType, err)
	}
	converted, err := convert.Convert(val, target)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, fieldVal.Addr().Interface())
}

func isAnyType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}
