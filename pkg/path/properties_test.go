package path

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeio/dlstore/pkg/permissions"
	"github.com/lakeio/dlstore/pkg/transport"
)

// ============================================================================
// Properties Codec Tests
// ============================================================================

func TestEncodeProperties(t *testing.T) {
	t.Run("EncodesSortedPairs", func(t *testing.T) {
		encoded, err := EncodeProperties(map[string]string{
			"b": "two",
			"a": "one",
		})
		require.NoError(t, err)
		assert.Equal(t, "a=b25l,b=dHdv", encoded)
	})

	t.Run("EmptyMapEncodesEmpty", func(t *testing.T) {
		encoded, err := EncodeProperties(nil)
		require.NoError(t, err)
		assert.Empty(t, encoded)
	})

	t.Run("AcceptsLatin1Values", func(t *testing.T) {
		encoded, err := EncodeProperties(map[string]string{"city": "Zürich"})
		require.NoError(t, err)

		decoded, err := DecodeProperties(encoded)
		require.NoError(t, err)
		assert.Equal(t, "Zürich", decoded["city"])
	})

	t.Run("RejectsValuesOutsideLatin1", func(t *testing.T) {
		_, err := EncodeProperties(map[string]string{"name": "日本"})

		var parseErr *permissions.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, permissions.ErrFormat, parseErr.Code)
	})
}

func TestDecodeProperties(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		original := map[string]string{
			"owner":   "team-storage",
			"purpose": "raw landing zone",
			"empty":   "",
		}

		encoded, err := EncodeProperties(original)
		require.NoError(t, err)

		decoded, err := DecodeProperties(encoded)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("EmptyInputYieldsEmptyMap", func(t *testing.T) {
		decoded, err := DecodeProperties("")
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("RejectsPairWithoutEquals", func(t *testing.T) {
		_, err := DecodeProperties("noequalsign")

		var parseErr *permissions.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, permissions.ErrFormat, parseErr.Code)
	})

	t.Run("RejectsInvalidBase64", func(t *testing.T) {
		_, err := DecodeProperties("name=!!!")

		var parseErr *permissions.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, permissions.ErrFormat, parseErr.Code)
	})
}

// ============================================================================
// GetProperties / SetProperties Tests
// ============================================================================

func TestGetProperties(t *testing.T) {
	t.Run("ParsesAllAttributes", func(t *testing.T) {
		executor := &fakeExecutor{responses: []*transport.Response{
			response(http.StatusOK, map[string]string{
				"ETag":                       `"etag-7"`,
				"Content-Length":             "1024",
				transport.HeaderResourceType: "file",
				transport.HeaderProperties:   "team=c3RvcmFnZQ==",
			}),
		}}
		client := newTestClient(t, executor)

		props, err := client.GetProperties(context.Background(), "file.txt", nil)
		require.NoError(t, err)

		assert.Equal(t, `"etag-7"`, props.ETag)
		assert.Equal(t, int64(1024), props.ContentLength)
		assert.Equal(t, ResourceFile, props.ResourceType)
		assert.Equal(t, map[string]string{"team": "storage"}, props.UserProperties)
	})

	t.Run("MissingContentLengthDefaultsToZero", func(t *testing.T) {
		executor := &fakeExecutor{responses: []*transport.Response{
			response(http.StatusOK, map[string]string{
				transport.HeaderResourceType: "directory",
			}),
		}}
		client := newTestClient(t, executor)

		props, err := client.GetProperties(context.Background(), "dir", nil)
		require.NoError(t, err)
		assert.Zero(t, props.ContentLength)
	})

	t.Run("RejectsMalformedContentLength", func(t *testing.T) {
		executor := &fakeExecutor{responses: []*transport.Response{
			response(http.StatusOK, map[string]string{
				"Content-Length": "12kb",
			}),
		}}
		client := newTestClient(t, executor)

		_, err := client.GetProperties(context.Background(), "file.txt", nil)

		var parseErr *permissions.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, permissions.ErrFormat, parseErr.Code)
		assert.Equal(t, "12kb", parseErr.Input)
	})
}

func TestSetProperties(t *testing.T) {
	executor := &fakeExecutor{responses: []*transport.Response{
		response(http.StatusOK, nil),
	}}
	client := newTestClient(t, executor)

	err := client.SetProperties(context.Background(), "file.txt", map[string]string{"team": "storage"}, nil)
	require.NoError(t, err)

	req := executor.requests[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "setProperties", req.Query.Get(transport.QueryAction))
	assert.Equal(t, "team=c3RvcmFnZQ==", req.Header.Get(transport.HeaderProperties))
}
