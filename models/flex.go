package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string or number into its string form. The platform
// API is inconsistent about quoting session numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// FlexBool decodes booleans the way the platform stores them: true/false, 0/1,
// or their string forms.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := coerceBool(raw)
	if err != nil {
		return err
	}
	*b = FlexBool(v)
	return nil
}

func coerceBool(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case float64:
		return v != 0, nil
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		if s == "" {
			return false, nil
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0, nil
		}
		parsed, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("cannot interpret %q as boolean", v)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("cannot interpret %v as boolean", raw)
	}
}
