package swiftpass

import (
	"strings"
)

// Validate checks that every requirement group is satisfied by params.
// A group is a single key or keys joined with "|", any one of which is
// enough. All unsatisfied groups are reported in one KindValidation error.
func Validate(params Params, required ...string) error {
	var missing []string
	for _, group := range required {
		if !satisfied(params, group) {
			missing = append(missing, group)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &Error{
		Kind:    KindValidation,
		Message: "missing required params: " + strings.Join(missing, ", "),
		Missing: missing,
	}
}

func satisfied(params Params, group string) bool {
	for _, key := range strings.Split(group, "|") {
		if truthy(params[strings.TrimSpace(key)]) {
			return true
		}
	}
	return false
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []byte:
		return len(t) > 0
	case bool:
		return t
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}
