package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	valid := []string{
		"0x0000000000000000000000000000000000000000",
		"0xAbC0000000000000000000000000000000000000",
		"0xabcdefABCDEF0123456789abcdefABCDEF012345",
	}
	for _, addr := range valid {
		assert.NoError(t, ValidateAddress(addr), "address %q", addr)
	}

	invalid := []string{
		"",
		"0x",
		"0x123",                                      // too short
		"0x0000000000000000000000000000000000000000ff", // too long
		"0xg000000000000000000000000000000000000000",   // non-hex
		"1x0000000000000000000000000000000000000000",   // wrong prefix
		"0X0000000000000000000000000000000000000000",   // uppercase prefix
		" 0x0000000000000000000000000000000000000000",  // embedded space
	}
	for _, addr := range invalid {
		err := ValidateAddress(addr)
		require.Error(t, err, "address %q", addr)

		verr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Equal(t, "address", verr.Field)
	}
}

func TestFormValidate(t *testing.T) {
	form := Form{
		Address: "  0xAbC0000000000000000000000000000000000000  ",
		Amount:  "0.25",
		Note:    " lunch ",
	}

	req, err := form.Validate()
	require.NoError(t, err)

	assert.Equal(t, "0xAbC0000000000000000000000000000000000000", req.Address)
	assert.Equal(t, "250000000000000000", req.Wei)
	assert.Equal(t, "lunch", req.Note)
	assert.Equal(t,
		"ethereum:0xAbC0000000000000000000000000000000000000?value=250000000000000000&message=lunch",
		req.URI,
	)
}

func TestFormValidate_AddressCheckedFirst(t *testing.T) {
	// Both fields are bad; the address error must win since conversion is
	// never attempted for an invalid address.
	form := Form{Address: "nonsense", Amount: "also nonsense"}

	_, err := form.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "address", verr.Field)
}

func TestFormValidate_EmptyAddress(t *testing.T) {
	_, err := Form{Address: "   ", Amount: "1"}.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "address", verr.Field)
	assert.Equal(t, "address is required", verr.Reason)
}

func TestFormValidate_AmountError(t *testing.T) {
	_, err := Form{Address: testAddr, Amount: "0"}.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "amount", verr.Field)
	assert.Contains(t, verr.Reason, "greater than zero")
}
