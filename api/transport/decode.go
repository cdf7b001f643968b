package transport

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/optional"
)

const (
	reasonInvalidFormat = "invalid_format"
	reasonUnrecognized  = "unrecognized"
)

var jsonNull = []byte("null")

// object is a decoded JSON object whose values are parsed field by field, so every
// failure can name the field it belongs to.
type object map[string]json.RawMessage

func decodeObject(body []byte) (object, error) {
	var obj object
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, domain.InvalidFormat("body", reasonInvalidFormat)
	}
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, domain.InvalidFormat("body", reasonInvalidFormat)
	}
	return obj, nil
}

// rejectUnknown fails on the first key, in sorted order, that is not allowed.
func (o object) rejectUnknown(allowed ...string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		if _, ok := known[k]; !ok {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return domain.InvalidFormat(keys[0], reasonUnrecognized)
}

// str reads an optional string. Absent and null both yield nil.
func (o object) str(field string) (*string, error) {
	raw, ok := o[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, domain.InvalidFormat(field, reasonInvalidFormat)
	}
	return &s, nil
}

// field reads a tri-state string.
func (o object) field(name string) (optional.Field[string], error) {
	raw, ok := o[name]
	if !ok {
		return optional.Field[string]{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return optional.Null[string](), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return optional.Field[string]{}, domain.InvalidFormat(name, reasonInvalidFormat)
	}
	return optional.Of(s), nil
}

// parseDate accepts only calendar-valid YYYY-MM-DD strings.
func parseDate(field, value string) (time.Time, error) {
	if len(value) != len(domain.DateLayout) {
		return time.Time{}, domain.InvalidFormat(field, reasonInvalidFormat)
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, domain.InvalidFormat(field, reasonInvalidFormat)
	}
	return d, nil
}

// FormatDate renders a due date for the wire, or nil when unset.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(domain.DateLayout)
	return &s
}
