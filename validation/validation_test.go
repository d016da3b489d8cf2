package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	URL  string `json:"url" validate:"required,url"`
	Kind string `json:"kind,omitempty" validate:"omitempty,oneof=a b"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(sample{URL: "https://example.com"}))

	err := v.Struct(sample{URL: "not a url", Kind: "c"})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"url": "url", "kind": "oneof=a b"}, verr.Fields)
	assert.Equal(t, "invalid request: kind: oneof=a b, url: url", verr.Error())
}

func TestValidator_Required(t *testing.T) {
	err := New().Struct(sample{})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["url"])
}

func TestField(t *testing.T) {
	assert.Equal(t, "invalid request: id: uuid", Field("id", "uuid").Error())
}
