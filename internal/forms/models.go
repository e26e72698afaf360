package forms

import (
	"strings"

	"github.com/blueexport/blueexport/backend/go-services/internal/store"
)

// Kind identifies a submitted form and the collection it is stored in.
type Kind int

const (
	KindInquiry Kind = iota + 1
	KindContact
)

// Collection returns the collection name documents of kind k are written to.
func (k Kind) Collection() string {
	switch k {
	case KindInquiry:
		return "inquiry"
	case KindContact:
		return "contactmessage"
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindInquiry:
		return "inquiry"
	case KindContact:
		return "contact"
	}
	return "unknown"
}

// Form is a validated submission ready to be persisted.
type Form interface {
	Kind() Kind
	Document() store.Document
}

// Inquiry is a buyer request for a quote.
type Inquiry struct {
	Name               *string `json:"name" binding:"omitempty,max=256"`
	Email              *string `json:"email" binding:"omitempty,email,max=256"`
	Phone              *string `json:"phone" binding:"omitempty,max=64"`
	ProductType        string  `json:"product_type" binding:"required,max=256"`
	Quantity           string  `json:"quantity" binding:"required,max=256"`
	DestinationCountry string  `json:"destination_country" binding:"required,max=256"`
	Message            *string `json:"message" binding:"omitempty,max=5000"`
}

func (i *Inquiry) Kind() Kind { return KindInquiry }

func (i *Inquiry) Document() store.Document {
	return store.Document{
		"name":                optional(i.Name),
		"email":               optional(i.Email),
		"phone":               optional(i.Phone),
		"product_type":        i.ProductType,
		"quantity":            i.Quantity,
		"destination_country": i.DestinationCountry,
		"message":             optional(i.Message),
	}
}

// ContactMessage is a general contact form submission.
type ContactMessage struct {
	Name    string  `json:"name" binding:"required,max=256"`
	Email   string  `json:"email" binding:"required,email,max=256"`
	Phone   *string `json:"phone" binding:"omitempty,max=64"`
	Subject *string `json:"subject" binding:"omitempty,max=256"`
	Message string  `json:"message" binding:"required,max=5000"`
}

func (m *ContactMessage) Kind() Kind { return KindContact }

func (m *ContactMessage) Document() store.Document {
	return store.Document{
		"name":    m.Name,
		"email":   m.Email,
		"phone":   optional(m.Phone),
		"subject": optional(m.Subject),
		"message": m.Message,
	}
}

// optional stores absent fields, and blank free-text fields, as explicit nulls.
// A present email never gets here blank: validation rejects it first.
func optional(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}
