package keys

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Load parses a localization JSON document, validates its shape, and
// returns the mutable tree plus its flattened leaves. A document that is
// not valid JSON or not a nested string-keyed tree is a fatal error; the
// resolver never runs on a partial tree.
func Load(data []byte) (map[string]any, []FlattenedKey, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, nil, fmt.Errorf("invalid localization file: %w", err)
	}
	if err := ValidateLocale(tree); err != nil {
		return nil, nil, fmt.Errorf("invalid localization file: %w", err)
	}

	flat, err := Flatten(data)
	if err != nil {
		return nil, nil, err
	}
	return tree, flat, nil
}

// Flatten produces one entry per leaf value in depth-first, key-insertion
// order. Arrays count as leaves and are never recursed into. Paths are
// dot-joined and unique; the raw data is token-walked because a decoded
// map would lose the document's key order.
func Flatten(data []byte) ([]FlattenedKey, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid localization file: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("localization file must be a JSON object, got %v", tok)
	}

	var flat []FlattenedKey
	if err := flattenObject(dec, nil, &flat); err != nil {
		return nil, fmt.Errorf("invalid localization file: %w", err)
	}
	return flat, nil
}

// flattenObject consumes an object body (opening brace already read),
// appending leaves in encounter order.
func flattenObject(dec *json.Decoder, path []string, flat *[]FlattenedKey) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		childPath := append(path, key)
		value, isObject, err := readValue(dec, childPath, flat)
		if err != nil {
			return err
		}
		if !isObject {
			*flat = append(*flat, FlattenedKey{
				Path:         strings.Join(childPath, "."),
				Value:        value,
				OriginalPath: append([]string(nil), childPath...),
			})
		}
	}

	// Consume the closing brace.
	_, err := dec.Token()
	return err
}

// readValue reads one JSON value. Objects recurse and report isObject;
// scalars and arrays return as leaf values.
func readValue(dec *json.Decoder, path []string, flat *[]FlattenedKey) (any, bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, false, err
	}

	d, isDelim := tok.(json.Delim)
	if !isDelim {
		return tok, false, nil
	}

	switch d {
	case '{':
		return nil, true, flattenObject(dec, path, flat)
	case '[':
		arr, err := readArray(dec, path, flat)
		return arr, false, err
	default:
		return nil, false, fmt.Errorf("unexpected delimiter %v", d)
	}
}

// readArray consumes an array body and returns it as an opaque leaf value.
func readArray(dec *json.Decoder, path []string, flat *[]FlattenedKey) ([]any, error) {
	arr := []any{}
	for dec.More() {
		// Nested objects inside arrays are opaque too: discard any leaves
		// recursion would have produced and keep the raw value.
		before := len(*flat)
		v, isObject, err := readValue(dec, path, flat)
		if err != nil {
			return nil, err
		}
		if isObject {
			*flat = (*flat)[:before]
			v = map[string]any{}
		}
		arr = append(arr, v)
	}
	_, err := dec.Token()
	return arr, err
}
