package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseTransformer splits a transformer identifier of the form
// "name[?key=value&flag]" into its name and ordered options. A key without a
// value is given the value "true".
func ParseTransformer(id string) (Transformer, error) {
	name, query, _ := strings.Cut(id, "?")
	name = strings.TrimSpace(name)
	if name == "" {
		return Transformer{}, errors.New("transformer name is empty")
	}

	t := Transformer{ID: id, Name: name}
	if query == "" {
		return t, nil
	}
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, hasValue := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return Transformer{}, fmt.Errorf("option key %q: %w", rawKey, err)
		}
		if key == "" {
			return Transformer{}, fmt.Errorf("option %q has an empty key", part)
		}
		value := "true"
		if hasValue {
			if value, err = url.QueryUnescape(rawValue); err != nil {
				return Transformer{}, fmt.Errorf("option %q: %w", key, err)
			}
		}
		t.Options = append(t.Options, Option{Key: key, Value: value})
	}
	return t, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
