package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// lenientInt accepts a JSON integer, a float with no fractional part, or a string holding an integer.
type lenientInt int

func (n *lenientInt) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 0); err == nil {
			*n = lenientInt(i)
			return nil
		}
		f, err := t.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return errNotInteger
		}
		*n = lenientInt(f)
		return nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 0)
		if err != nil {
			return errNotInteger
		}
		*n = lenientInt(i)
		return nil
	}
	return errNotInteger
}

// readStudentInput decodes a student body matching keys exactly as written.
// Absent keys stay nil for the required check; values of the wrong type are reported in fields.
func readStudentInput(body io.Reader) (studentInput, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return studentInput{}, nil, err
	}

	var input studentInput
	fields := make(map[string]string)

	if v, ok := raw["name"]; ok {
		var s string
		if isJSONNull(v) || json.Unmarshal(v, &s) != nil {
			fields["name"] = "invalid"
		} else {
			input.Name = &s
		}
	}
	if v, ok := raw["Gender"]; ok {
		var s string
		if isJSONNull(v) || json.Unmarshal(v, &s) != nil {
			fields["Gender"] = "invalid"
		} else {
			input.Gender = &s
		}
	}
	if v, ok := raw["age"]; ok {
		var age lenientInt
		if isJSONNull(v) || json.Unmarshal(v, &age) != nil {
			fields["age"] = "invalid"
		} else {
			a := int(age)
			input.Age = &a
		}
	}
	return input, fields, nil
}

func isJSONNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
