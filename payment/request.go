package payment

import "strings"

// Form carries the raw user input from the payment form, untrusted and
// unvalidated.
type Form struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Note    string `json:"note"`
}

// Request is a validated payment request. Wei is a strictly positive decimal
// digit string and URI is the payment URI built from the other fields.
type Request struct {
	Address string
	Wei     string
	Note    string
	URI     string
}

// Validate runs the full validation pipeline over the form: address format
// first, then amount conversion. On the first failure it returns a
// *ValidationError naming the offending field; nothing is partially built.
func (f Form) Validate() (*Request, error) {
	address := strings.TrimSpace(f.Address)
	if address == "" {
		return nil, invalid("address", "address is required")
	}
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	wei, err := ToWei(f.Amount)
	if err != nil {
		return nil, err
	}

	note := strings.TrimSpace(f.Note)

	return &Request{
		Address: address,
		Wei:     wei,
		Note:    note,
		URI:     BuildURI(address, wei, note),
	}, nil
}

// Renderer turns a payment URI into an image artifact. Implementations
// should return an error wrapping their library's failure rather than
// partial image bytes.
type Renderer interface {
	Render(uri string) ([]byte, error)
}
