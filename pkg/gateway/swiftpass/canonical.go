package swiftpass

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Params is a request or response field set keyed by wire name.
type Params map[string]interface{}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// stringify renders a scalar value the way it is signed and sent.
// Signing and XML encoding both go through here, so a numeric field signs
// and serializes to the same text.
func stringify(v interface{}) (string, error) {
	switch v.(type) {
	case nil:
		return "", nil
	case string, []byte, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		s, err := cast.ToStringE(v)
		if err != nil {
			return "", err
		}
		if !utf8.ValidString(s) {
			return "", errors.New("value is not valid utf-8")
		}
		return s, nil
	}
	return "", errors.Errorf("unsupported value type %T", v)
}

// validName reports whether key can be written as an XML element name.
func validName(key string) bool {
	if key == "" || !utf8.ValidString(key) {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}

// field checks a key/value pair and returns the wire text of the value.
func field(key string, v interface{}) (string, error) {
	if !validName(key) {
		return "", newError(KindValidation, "field name %q is not a valid xml name", key)
	}
	s, err := stringify(v)
	if err != nil {
		return "", &Error{Kind: KindValidation, Message: "field " + key + " cannot be sent", Err: err}
	}
	return s, nil
}

// Canonical builds the signing string k1=v1&k2=v2 with keys in ascending
// order. Nil and empty values are left out and nothing is escaped.
func Canonical(p Params) (string, error) {
	keys := make([]string, 0, len(p))
	values := make(map[string]string, len(p))
	for k, v := range p {
		s, err := field(k, v)
		if err != nil {
			return "", err
		}
		if s == "" {
			continue
		}
		keys = append(keys, k)
		values[k] = s
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
	}
	return b.String(), nil
}
