package configmanager

import (
	"fmt"
	"reflect"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

// flagValueSetter is implemented by enum types that satisfy pflag.Value.
type flagValueSetter interface {
	Set(value string) error
}

// setterDecodeHook decodes strings into any target type whose pointer implements
// Set(string) error, so enum validation runs while unmarshalling.
func setterDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		target := reflect.New(to)

		setter, ok := target.Interface().(flagValueSetter)
		if !ok {
			return data, nil
		}

		raw, _ := data.(string)

		err := setter.Set(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", to.Name(), err)
		}

		return target.Elem().Interface(), nil
	}
}
