// Package envvars turns property keys and values into environment variable assignments.
package envvars

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Name converts a dotted property key into its relaxed environment variable form:
// dots become underscores, dashes are dropped and letters are upper cased,
// e.g. spring.datasource.driver-class-name gives SPRING_DATASOURCE_DRIVERCLASSNAME.
func Name(key string) string {
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, ".", "_")
	return strings.ToUpper(key)
}

// Value renders a scalar property value. Nil yields false.
func Value(v interface{}) (string, bool, error) {
	switch v := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case bool:
		return strconv.FormatBool(v), true, nil
	case int:
		return strconv.Itoa(v), true, nil
	case int64:
		return strconv.FormatInt(v, 10), true, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true, nil
	case fmt.Stringer:
		return v.String(), true, nil
	default:
		return "", false, errors.Errorf("unsupported value type %T", v)
	}
}

// FromProperties builds the environment variables for the given properties.
// Keys colliding after Name are resolved in key order, the last key wins.
func FromProperties(props map[string]interface{}) (map[string]string, error) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, len(props))
	for _, k := range keys {
		v, ok, err := Value(props[k])
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", k)
		}
		if ok {
			out[Name(k)] = v
		}
	}
	return out, nil
}
