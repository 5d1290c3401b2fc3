package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// rawBody は JSON ボディをフィールド単位で保持する。PATCH で「省略」と
// 「明示的な null」を区別するために生のメッセージのまま扱う。
type rawBody map[string]json.RawMessage

func decodeRawBody(r io.Reader, limit int64) (rawBody, error) {
	var body rawBody
	if err := json.NewDecoder(io.LimitReader(r, limit)).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// has reports whether the field appeared in the request at all.
func (b rawBody) has(field string) bool {
	_, ok := b[field]
	return ok
}

// isNull reports whether the field was sent as an explicit JSON null.
func (b rawBody) isNull(field string) bool {
	raw, ok := b[field]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (b rawBody) stringField(field string) (string, error) {
	raw, ok := b[field]
	if !ok || b.isNull(field) {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%s must be a string", field)
	}
	return strings.TrimSpace(value), nil
}

func (b rawBody) intField(field string) (int, error) {
	raw, ok := b[field]
	if !ok || b.isNull(field) {
		return 0, nil
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return value, nil
}

// floatField accepts both JSON numbers and numeric strings. Admin forms
// post coordinates as strings.
func (b rawBody) floatField(field string) (float64, error) {
	raw, ok := b[field]
	if !ok || b.isNull(field) {
		return 0, nil
	}
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return number, nil
}

func (b rawBody) stringSliceField(field string) ([]string, error) {
	raw, ok := b[field]
	if !ok || b.isNull(field) {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("%s must be an array of strings", field)
	}
	return values, nil
}

// optionalIntField returns nil for absent or null fields so callers can
// pass cleared sub-ratings through unchanged.
func (b rawBody) optionalIntField(field string) (*int, error) {
	raw, ok := b[field]
	if !ok || b.isNull(field) {
		return nil, nil
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("%s must be an integer", field)
	}
	return &value, nil
}

// presentString reports whether the field carries a non-empty string.
func (b rawBody) presentString(field string) bool {
	value, err := b.stringField(field)
	return err == nil && value != ""
}

// presentNumber reports whether the field carries any non-null value.
func (b rawBody) presentNumber(field string) bool {
	return b.has(field) && !b.isNull(field)
}
