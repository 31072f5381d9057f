package entities

// Address is the optional shipping/billing address. When Street is filled the
// whole block is required (a partial address is invalid).
type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
}

// Customer is the buyer data captured at checkout.
//
// Document is the CPF-equivalent id; Document and Address.ZipCode are stored
// digits-only (non-digit characters stripped before persistence).
type Customer struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Document string  `json:"document"`
	Phone    string  `json:"phone,omitempty"`
	Address  Address `json:"address,omitempty"`
}
