package orders

import (
	"time"

	"github.com/AndhiniDev/dapur-azka-backend/internal/cart"
)

// DeliveryDetails is the recipient snapshot copied from the profile at
// submit time.
type DeliveryDetails struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Order is an immutable snapshot of a completed checkout. Status is the only
// field that changes after creation, and only through the registry's FSM.
// Items and delivery details are copies: later edits to the catalog or the
// profile never rewrite history.
type Order struct {
	ID              string          `json:"orderId"`
	UserID          string          `json:"userId"`
	Items           []cart.Line     `json:"items"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails"`
	DeliveryMethod  string          `json:"deliveryMethod"`
	PaymentMethod   string          `json:"paymentMethod"`
	Notes           string          `json:"orderNotes,omitempty"`
	Subtotal        int             `json:"subtotal"`
	Tax             int             `json:"tax"`
	ShippingCost    int             `json:"shippingCost"`
	Total           int             `json:"total"`
	Status          Status          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
}
