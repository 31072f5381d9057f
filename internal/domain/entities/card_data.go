package entities

// CardData is the raw card form input for one submission. Transient: it is
// validated, tokenized/charged, and discarded; only CardDetails survives.
type CardData struct {
	HolderName  string `json:"holder_name"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// PixData is the buyer input for a PIX submission.
type PixData struct {
	PayerName     string `json:"payer_name"`
	PayerDocument string `json:"payer_document"`
}
