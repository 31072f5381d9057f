package request

import "loja_checkout/internal/domain/entities"

type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

type CustomerRequest struct {
	Name     string         `json:"name" binding:"required"`
	Email    string         `json:"email" binding:"required"`
	Document string         `json:"document" binding:"required"`
	Phone    string         `json:"phone"`
	Address  AddressRequest `json:"address"`
}

type CardRequest struct {
	HolderName  string `json:"holder_name"`
	Number      string `json:"number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

type PixRequest struct {
	PayerName     string `json:"payer_name"`
	PayerDocument string `json:"payer_document"`
}

// CardCheckoutRequest is the card form submission payload. Product accepts a
// slug or an id. Card fields are deliberately unbound here: the processor
// owns card validation and its error messages.
type CardCheckoutRequest struct {
	Product  string          `json:"product" binding:"required"`
	Customer CustomerRequest `json:"customer" binding:"required"`
	Card     CardRequest     `json:"card" binding:"required"`
}

type PixCheckoutRequest struct {
	Product  string          `json:"product" binding:"required"`
	Customer CustomerRequest `json:"customer" binding:"required"`
	Pix      PixRequest      `json:"pix"`
}

func (r CustomerRequest) ToEntity() entities.Customer {
	return entities.Customer{
		Name:     r.Name,
		Email:    r.Email,
		Document: r.Document,
		Phone:    r.Phone,
		Address: entities.Address{
			Street:     r.Address.Street,
			Number:     r.Address.Number,
			Complement: r.Address.Complement,
			District:   r.Address.District,
			City:       r.Address.City,
			State:      r.Address.State,
			ZipCode:    r.Address.ZipCode,
		},
	}
}

func (r CardRequest) ToEntity() entities.CardData {
	return entities.CardData{
		HolderName:  r.HolderName,
		Number:      r.Number,
		ExpiryMonth: r.ExpiryMonth,
		ExpiryYear:  r.ExpiryYear,
		CVV:         r.CVV,
	}
}

func (r PixRequest) ToEntity() entities.PixData {
	return entities.PixData{
		PayerName:     r.PayerName,
		PayerDocument: r.PayerDocument,
	}
}
