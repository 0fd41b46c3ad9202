package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	valid := []struct {
		name string
		path string
		want int64
	}{
		{"simple", "/person/123", 123},
		{"single digit", "/person/7", 7},
		{"max int64", "/person/9223372036854775807", 9223372036854775807},
		{"leading zeros", "/person/007", 7},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.path, "/person/")
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	invalid := []struct {
		name string
		path string
	}{
		{"not a number", "/person/abc"},
		{"zero", "/person/0"},
		{"negative", "/person/-1"},
		{"empty", "/person/"},
		{"trailing segment", "/person/123/enrichment"},
		{"overflows int64", "/person/9223372036854775808"},
		{"prefix mismatch", "/user/5"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractID(tt.path, "/person/")
			assert.ErrorIs(t, err, ErrInvalidID)
			assert.Zero(t, id)
		})
	}
}
