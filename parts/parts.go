package parts

import (
	"strings"

	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/resource"
)

const Path = "parts"

// Part is a manufactured item that can be quoted and stored in a row.
type Part struct {
	ID          string  `json:"id,omitempty"`
	PartNumber  string  `json:"partNumber"`
	Description string  `json:"description,omitempty"`
	Material    string  `json:"material,omitempty"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	RowID       string  `json:"rowId,omitempty"`
}

// LineTotal is UnitPrice times Quantity.
func (p Part) LineTotal() float64 {
	return p.UnitPrice * float64(p.Quantity)
}

func (p Part) Validate() error {
	if strings.TrimSpace(p.PartNumber) == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "part number is required")
	}
	if p.UnitPrice < 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "unit price cannot be negative")
	}
	if p.Quantity < 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "quantity cannot be negative")
	}
	return nil
}

var Fields = listing.Fields[Part]{
	"partNumber":  func(p Part) any { return p.PartNumber },
	"description": func(p Part) any { return p.Description },
	"material":    func(p Part) any { return p.Material },
	"unitPrice":   func(p Part) any { return p.UnitPrice },
	"quantity":    func(p Part) any { return p.Quantity },
	"rowId":       func(p Part) any { return p.RowID },
}

type Repo = resource.Repo[Part]

func NewRepo(client resource.Doer) Repo {
	return resource.NewCollection[Part](client, Path)
}
