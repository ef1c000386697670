// Package cursor encodes DynamoDB continuation keys as opaque pagination
// cursors. A cursor handed back by a client either round-trips to the exact
// key it was built from or decoding fails; a corrupted cursor never yields a
// partial key that could silently skip or duplicate records.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrInvalidCursor is returned when a cursor cannot be decoded back into the
// continuation key it claims to carry.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Encode serializes a LastEvaluatedKey into an opaque URL-safe string.
// A nil or empty key encodes to the empty string, meaning "no more pages".
// Only string key attributes are supported; every key in this table's schema
// is a string.
func Encode(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	flat := make(map[string]string, len(key))
	for name, av := range key {
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("cursor attribute %q is not a string", name)
		}
		flat[name] = s.Value
	}
	raw, err := canonicalJSON(flat)
	if err != nil {
		return "", fmt.Errorf("failed to serialize cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Decode turns an opaque cursor back into an ExclusiveStartKey. The empty
// string decodes to nil (first page). Any input that does not reproduce the
// same cursor when re-encoded is rejected with ErrInvalidCursor.
func Decode(encoded string) (map[string]types.AttributeValue, error) {
	if encoded == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidCursor)
	}
	// Reject non-canonical encodings of the same payload so a cursor is a
	// stable identifier for one position.
	canonical, err := canonicalJSON(flat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if base64.RawURLEncoding.EncodeToString(canonical) != encoded {
		return nil, fmt.Errorf("%w: non-canonical encoding", ErrInvalidCursor)
	}
	key := make(map[string]types.AttributeValue, len(flat))
	for name, value := range flat {
		if name == "" || value == "" {
			return nil, fmt.Errorf("%w: blank key attribute", ErrInvalidCursor)
		}
		key[name] = &types.AttributeValueMemberS{Value: value}
	}
	return key, nil
}

// canonicalJSON is the single definition of canonical cursor bytes.
// encoding/json already emits map keys in sorted order with no extra
// whitespace, so both Encode and the round-trip check in Decode share it.
func canonicalJSON(flat map[string]string) ([]byte, error) {
	return json.Marshal(flat)
}
