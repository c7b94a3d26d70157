package payment

import "regexp"

// addressPattern matches a 0x-prefixed 20-byte hex address, case-insensitive.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateAddress accepts exactly "0x" followed by 40 hex digits and rejects
// everything else. Checksum casing is not verified.
func ValidateAddress(address string) error {
	if !addressPattern.MatchString(address) {
		return invalid("address", "must be 0x followed by 40 hex characters")
	}
	return nil
}
