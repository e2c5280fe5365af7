package v1

import (
	"github.com/google/uuid"
	"github.com/sectionledger/backend/internal/httputil"
	"github.com/shopspring/decimal"
)

// ID is a resource ID in a request path.
type ID struct {
	uuid.UUID
}

// UnmarshalParam parses a path parameter. Empty and nil IDs are rejected.
func (id *ID) UnmarshalParam(param string) error {
	parsed, err := uuid.Parse(param)
	if err != nil || parsed == uuid.Nil {
		return httputil.ErrInvalidUUID
	}

	id.UUID = parsed
	return nil
}

type URIUser struct {
	UserID ID `uri:"userId" binding:"required" format:"UUID"` // ID of the user
}

type URIUserResource struct {
	URIUser
	ID ID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIUserMonth struct {
	URIUser
	Month string `uri:"month" binding:"required" example:"2024-05"` // Year and month in YYYY-MM format
}

// Response is the envelope of every successful response with a body.
type Response[T any] struct {
	Data T `json:"data"`
}

// AmountEditable is the body of requests that move a single amount.
type AmountEditable struct {
	Amount decimal.Decimal `json:"amount" example:"150" minimum:"0.00000001"` // The amount to move
}

// DescriptionEditable is the body to change the description of a transaction.
type DescriptionEditable struct {
	Description string `json:"description" example:"Birthday present"` // The new description
}
