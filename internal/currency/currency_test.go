package currency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("en-US", "VND")
	require.NoError(t, err)

	_, err = New("en-US", "NOPE")
	assert.Error(t, err)

	_, err = New("not a locale!", "VND")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	f, err := New("en-US", "VND")
	require.NoError(t, err)

	assert.Equal(t, "VND", f.Code())

	got := f.Format(1234567)
	assert.Contains(t, got, "1,234,567")
	assert.NotContains(t, got, ".")

	assert.Contains(t, f.Format(-50000), "-50,000")
	assert.Contains(t, f.Format(0), "0")
}

func TestFormatFloat(t *testing.T) {
	f, err := New("en-US", "VND")
	require.NoError(t, err)

	assert.Equal(t, f.Format(33333), f.FormatFloat(33333.33))
	assert.Equal(t, f.Format(66667), f.FormatFloat(66666.67))
	assert.Equal(t, f.Format(-33333), f.FormatFloat(-33333.33))
}

func TestFormatSigned(t *testing.T) {
	f, err := New("en-US", "VND")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(f.FormatSigned(50000), "+"))
	assert.Equal(t, f.Format(-50000), f.FormatSigned(-50000))
	assert.Equal(t, f.Format(0), f.FormatSigned(0.2))
}

func TestDefault(t *testing.T) {
	f := Default()
	assert.Equal(t, DefaultCode, f.Code())
	assert.Contains(t, f.Format(50000), "50")
}
