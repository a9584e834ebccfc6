package utility

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var (
	errorNoHashableFields = errors.New("no hashable fields found")
	errorNotStruct        = errors.New("hash expects a struct")
)

// Hash - sha256 over the fields tagged with `hash`, in field name order
func Hash(obj interface{}) (string, error) {
	val := reflect.Indirect(reflect.ValueOf(obj))
	if val.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w, got %T", errorNotStruct, obj)
	}
	typ := val.Type()

	// Only the presence of the tag matters, not its value
	hashable := make(map[string]interface{})
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		if _, ok := field.Tag.Lookup("hash"); ok {
			hashable[field.Name] = val.Field(i).Interface()
		}
	}

	if len(hashable) == 0 {
		return "", errorNoHashableFields
	}

	keys := make([]string, 0, len(hashable))
	for k := range hashable {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	for _, key := range keys {
		if err := enc.Encode(hashable[key]); err != nil {
			return "", fmt.Errorf("failed to encode hashable field %s: %w", key, err)
		}
	}

	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}
