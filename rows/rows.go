package rows

import (
	"strings"

	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/resource"
)

const Path = "rows"

// Row is a storage row on the shop floor; Bay identifies the bay it belongs to.
type Row struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Bay      string `json:"bay"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
}

func (r Row) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "row name is required")
	}
	if strings.TrimSpace(r.Bay) == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "bay is required")
	}
	if r.Capacity < 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "capacity cannot be negative")
	}
	return nil
}

var Fields = listing.Fields[Row]{
	"name":     func(r Row) any { return r.Name },
	"bay":      func(r Row) any { return r.Bay },
	"location": func(r Row) any { return r.Location },
	"capacity": func(r Row) any { return r.Capacity },
}

type Repo = resource.Repo[Row]

func NewRepo(client resource.Doer) Repo {
	return resource.NewCollection[Row](client, Path)
}
