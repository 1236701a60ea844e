package path

import (
	"context"
	"encoding/base64"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/lakeio/dlstore/pkg/permissions"
	"github.com/lakeio/dlstore/pkg/transport"
)

// EncodeProperties serializes user metadata as comma-separated
// "name=base64(value)" pairs, the passthrough format of the properties
// header. Values must be representable in a single-byte-per-character
// encoding (Latin-1) before base64; a value containing a rune above U+00FF
// fails with a format error. Pairs are emitted in sorted name order so the
// encoding is deterministic.
func EncodeProperties(props map[string]string) (string, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		raw, err := latin1Bytes(props[name])
		if err != nil {
			return "", err
		}
		parts = append(parts, name+"="+base64.StdEncoding.EncodeToString(raw))
	}
	return strings.Join(parts, ","), nil
}

// DecodeProperties parses the comma-separated "name=base64(value)" form
// back into a map. Malformed pairs and invalid base64 fail with a format
// error. An empty input yields an empty map.
func DecodeProperties(text string) (map[string]string, error) {
	props := make(map[string]string)
	if text == "" {
		return props, nil
	}

	for _, pair := range strings.Split(text, ",") {
		name, encoded, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, &permissions.ParseError{
				Code:    permissions.ErrFormat,
				Message: "property pair must have the form name=base64(value)",
				Input:   pair,
			}
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, &permissions.ParseError{
				Code:    permissions.ErrFormat,
				Message: "property value is not valid base64",
				Input:   pair,
			}
		}
		props[name] = latin1String(raw)
	}
	return props, nil
}

// latin1Bytes converts text to its single-byte encoding, failing on runes
// outside the Latin-1 range.
func latin1Bytes(text string) ([]byte, error) {
	raw := make([]byte, 0, len(text))
	for _, r := range text {
		if r > 0xFF {
			return nil, &permissions.ParseError{
				Code:    permissions.ErrFormat,
				Message: "property value contains a character outside the Latin-1 range",
				Input:   text,
			}
		}
		raw = append(raw, byte(r))
	}
	return raw, nil
}

// latin1String is the inverse of latin1Bytes.
func latin1String(raw []byte) string {
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// Properties reports the attributes of a path relevant to conditional
// requests and the decoded user metadata.
type Properties struct {
	// ETag is the current entity tag of the path.
	ETag string

	// ContentLength is the size of the file in bytes (zero for
	// directories).
	ContentLength int64

	// ResourceType is "file" or "directory".
	ResourceType ResourceType

	// UserProperties is the decoded user metadata of the path.
	UserProperties map[string]string
}

// GetProperties fetches the path attributes needed for conditional requests
// together with the decoded user metadata, in a single round trip.
func (c *Client) GetProperties(
	ctx context.Context,
	targetPath string,
	conditions *AccessConditions,
) (*Properties, error) {
	req := newRequest(http.MethodHead, targetPath)
	conditions.apply(req.Header)

	resp, err := c.execute(ctx, req, http.StatusOK, conditions)
	if err != nil {
		return nil, err
	}

	props := &Properties{
		ETag:         resp.Header.Get("ETag"),
		ResourceType: ResourceType(resp.Header.Get(transport.HeaderResourceType)),
	}
	if text := resp.Header.Get("Content-Length"); text != "" {
		length, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &permissions.ParseError{
				Code:    permissions.ErrFormat,
				Message: "content length is not a decimal integer",
				Input:   text,
			}
		}
		props.ContentLength = length
	}
	decoded, err := DecodeProperties(resp.Header.Get(transport.HeaderProperties))
	if err != nil {
		return nil, err
	}
	props.UserProperties = decoded

	return props, nil
}

// SetProperties replaces the user metadata of a path in a single round trip.
func (c *Client) SetProperties(
	ctx context.Context,
	targetPath string,
	props map[string]string,
	conditions *AccessConditions,
) error {
	encoded, err := EncodeProperties(props)
	if err != nil {
		return err
	}

	req := newRequest(http.MethodPatch, targetPath)
	req.Query.Set(transport.QueryAction, "setProperties")
	req.Header.Set(transport.HeaderProperties, encoded)
	conditions.apply(req.Header)

	_, err = c.execute(ctx, req, http.StatusOK, conditions)
	return err
}
