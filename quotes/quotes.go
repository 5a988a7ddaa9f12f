package quotes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/quote-admin/gateway"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/internal/utils"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/parts"
	"github.com/jrsteele09/quote-admin/resource"
)

const Path = "quotes"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type Quote struct {
	ID        string     `json:"id,omitempty"`
	Reference string     `json:"reference"`
	Customer  string     `json:"customer"`
	Status    Status     `json:"status"`
	Total     float64    `json:"total"`
	PartIDs   []string   `json:"partIds,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"` // Set by the API
	UpdatedAt *time.Time `json:"updatedAt,omitempty"` // Set by the API
}

func (q Quote) Validate() error {
	if strings.TrimSpace(q.Customer) == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "customer is required")
	}
	if q.Status != "" && !q.Status.Valid() {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "unknown status %q", q.Status)
	}
	if q.Total < 0 {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "total cannot be negative")
	}
	return nil
}

var Fields = listing.Fields[Quote]{
	"reference": func(q Quote) any { return q.Reference },
	"customer":  func(q Quote) any { return q.Customer },
	"status":    func(q Quote) any { return string(q.Status) },
	"total":     func(q Quote) any { return q.Total },
	"createdAt": func(q Quote) any { return utils.Value(q.CreatedAt) },
	"updatedAt": func(q Quote) any { return utils.Value(q.UpdatedAt) },
}

// Repo adds the quote's parts to the usual collection operations.
type Repo struct {
	*resource.Collection[Quote]
	client resource.Doer
}

var _ resource.Repo[Quote] = (*Repo)(nil)

func NewRepo(client resource.Doer) *Repo {
	return &Repo{
		Collection: resource.NewCollection[Quote](client, Path),
		client:     client,
	}
}

// Parts lists the parts attached to a quote (GET quotes/{id}/parts).
func (r *Repo) Parts(ctx context.Context, quoteID string) ([]parts.Part, error) {
	path, err := r.ItemPath(quoteID, parts.Path)
	if err != nil {
		return nil, err
	}
	items := []parts.Part{}
	if err := r.client.Do(ctx, gateway.Request{Method: http.MethodGet, Path: path}, &items); err != nil {
		return nil, fmt.Errorf("[quotes Parts] %w", err)
	}
	return items, nil
}

// Total sums the line totals of ps.
func Total(ps []parts.Part) float64 {
	var total float64
	for _, p := range ps {
		total += p.LineTotal()
	}
	return total
}
