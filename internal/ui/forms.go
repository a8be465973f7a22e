package ui

import (
	"strconv"
	"strings"
)

func formString(values map[string][]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

func formBool(values map[string][]string, key string) bool {
	v := strings.ToLower(formString(values, key))
	return v == "true" || v == "1" || v == "on" || v == "yes"
}

func formInt(values map[string][]string, key string) (int, error) {
	return strconv.Atoi(formString(values, key))
}

func formInt64(values map[string][]string, key string) (int64, error) {
	return strconv.ParseInt(formString(values, key), 10, 64)
}

func formFloat(values map[string][]string, key string) (float64, error) {
	return strconv.ParseFloat(formString(values, key), 64)
}

// formInt64List parses a multi-select. Blank entries are skipped; a single
// bad value poisons the whole list.
func formInt64List(values map[string][]string, key string) ([]int64, error) {
	if values == nil {
		return nil, nil
	}
	out := make([]int64, 0, len(values[key]))
	for _, raw := range values[key] {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
