package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWei_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"whole ether", "1", "1000000000000000000"},
		{"single wei", "0.000000000000000001", "1"},
		{"trailing dot", "5.", "5000000000000000000"},
		{"leading dot", ".5", "500000000000000000"},
		{"mixed", "1.5", "1500000000000000000"},
		{"full precision", "0.123456789012345678", "123456789012345678"},
		{"large amount", "123456789", "123456789000000000000000000"},
		{"leading zeros", "007", "7000000000000000000"},
		{"surrounding whitespace", "  2.5  ", "2500000000000000000"},
		{"above one with max frac", "1.000000000000000001", "1000000000000000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWei(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWei_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"empty", "", "amount is required"},
		{"whitespace only", "   ", "amount is required"},
		{"lone dot", ".", "not a valid number"},
		{"two dots", "1.2.3", "not a valid number"},
		{"letters", "1a", "not a valid number"},
		{"negative", "-1", "not a valid number"},
		{"comma separator", "1,5", "not a valid number"},
		{"exponent", "1e18", "not a valid number"},
		{"19 fractional digits", "0.0000000000000000001", "too many decimal places"},
		{"zero", "0", "must be greater than zero"},
		{"zero with fraction", "0.0", "must be greater than zero"},
		{"zero with max fraction", "0.000000000000000000", "must be greater than zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToWei(tt.input)
			require.Error(t, err)

			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Equal(t, "amount", verr.Field)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}
}

func TestToWei_Idempotent(t *testing.T) {
	first, err := ToWei("3.141592653589793238")
	require.NoError(t, err)

	second, err := ToWei("3.141592653589793238")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestToWei_NoLeadingZero(t *testing.T) {
	for _, input := range []string{"0.5", "0.000000000000000042", "10", "0.100000000000000001"} {
		got, err := ToWei(input)
		require.NoError(t, err)
		assert.NotEqual(t, byte('0'), got[0], "ToWei(%q) = %q has a leading zero", input, got)
	}
}

func TestFromWei(t *testing.T) {
	tests := []struct {
		wei  string
		want string
	}{
		{"1000000000000000000", "1"},
		{"1", "0.000000000000000001"},
		{"1500000000000000000", "1.5"},
		{"123456789012345678", "0.123456789012345678"},
	}

	for _, tt := range tests {
		got, err := FromWei(tt.wei)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FromWei("not-a-number")
	assert.Error(t, err)
}
