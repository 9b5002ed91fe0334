package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "logvault/pkg/domain-errors"
	limits "logvault/pkg/platform/validation"
)

func strPtr(s string) *string { return &s }

func TestAddRequest_Validate(t *testing.T) {
	t.Run("parses level case-insensitively", func(t *testing.T) {
		req := &AddRequest{Message: "started", Level: " warn ", Namespace: "app"}
		req.Normalize()
		require.NoError(t, req.Validate())
		assert.Equal(t, LevelWarn, req.ParsedLevel())
	})

	t.Run("empty namespace and message are accepted", func(t *testing.T) {
		req := &AddRequest{Level: "Info"}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing level rejected", func(t *testing.T) {
		err := (&AddRequest{Message: "x"}).Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "level is required")
	})

	t.Run("unknown level rejected", func(t *testing.T) {
		err := (&AddRequest{Level: "verbose"}).Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "level must be one of Debug, Info, Warn, Error, Fatal", err.Error())
	})

	t.Run("message over limit rejected", func(t *testing.T) {
		req := &AddRequest{Level: "Info", Message: strings.Repeat("m", limits.MaxMessageLength+1)}
		err := req.Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("namespace at limit accepted", func(t *testing.T) {
		req := &AddRequest{Level: "Info", Namespace: strings.Repeat("n", limits.MaxNamespaceLength)}
		assert.NoError(t, req.Validate())
	})
}

func TestQueryRequest_Validate(t *testing.T) {
	t.Run("builds filter and page", func(t *testing.T) {
		take, prev := 10, 5
		req := &QueryRequest{
			Namespaces: []string{"a", "b", "a"},
			Level:      strPtr("error"),
			Take:       &take,
			Prev:       &prev,
		}
		req.Normalize()
		require.NoError(t, req.Validate())

		assert.Equal(t, []string{"a", "b"}, req.Filter().Namespaces)
		require.NotNil(t, req.Filter().MinLevel)
		assert.Equal(t, LevelError, *req.Filter().MinLevel)
		assert.Equal(t, 5, req.Page().Prev)
		assert.Equal(t, 10, *req.Page().Take)
	})

	t.Run("empty request selects everything", func(t *testing.T) {
		req := &QueryRequest{Level: strPtr("  ")}
		req.Normalize()
		require.NoError(t, req.Validate())
		assert.Nil(t, req.Filter().MinLevel)
		assert.Empty(t, req.Filter().Namespaces)
		assert.Nil(t, req.Page().Take)
		assert.Equal(t, 0, req.Page().Prev)
	})

	t.Run("negative take rejected", func(t *testing.T) {
		take := -1
		err := (&QueryRequest{Take: &take}).Validate()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("negative prev rejected", func(t *testing.T) {
		prev := -3
		err := (&QueryRequest{Prev: &prev}).Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("take zero accepted", func(t *testing.T) {
		take := 0
		req := &QueryRequest{Take: &take}
		require.NoError(t, req.Validate())
		assert.Equal(t, 0, *req.Page().Take)
	})

	t.Run("unknown level rejected as validation error", func(t *testing.T) {
		err := (&QueryRequest{Level: strPtr("loud")}).Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("too many namespaces rejected", func(t *testing.T) {
		namespaces := make([]string, limits.MaxNamespaces+1)
		for i := range namespaces {
			namespaces[i] = strings.Repeat("n", i+1)
		}
		err := (&QueryRequest{Namespaces: namespaces}).Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too many namespaces")
	})
}

func TestSizeRequest_Validate(t *testing.T) {
	req := &SizeRequest{Namespaces: []string{"x"}, Level: strPtr("Fatal")}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, LevelFatal, *req.Filter().MinLevel)
}

func TestBufferSizeRequest_Validate(t *testing.T) {
	assert.NoError(t, (&BufferSizeRequest{Size: 1}).Validate())

	err := (&BufferSizeRequest{Size: 0}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size must be at least 1")
}

func TestNewEntryResult(t *testing.T) {
	res := NewEntryResult(Entry{Sequence: 7, Namespace: "app", Level: LevelError, Message: "boom"})
	assert.Equal(t, 3, res.Level)
	assert.Equal(t, "Error", res.LevelName)
	assert.Equal(t, uint64(7), res.Sequence)
}
