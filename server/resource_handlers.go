package server

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/quote-admin/gateway"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/parts"
	"github.com/jrsteele09/quote-admin/quotes"
	"github.com/jrsteele09/quote-admin/resource"
	"github.com/jrsteele09/quote-admin/users"
)

type model interface {
	Validate() error
}

type repoFactory[T any] func(resource.Doer) resource.Repo[T]

// resourceOptions adjusts how one collection is listed and shown.
type resourceOptions[T any] struct {
	// list fetches the items to page; nil lists the whole collection.
	list func(ctx context.Context, repo resource.Repo[T], query url.Values) ([]T, error)
	// view is applied to every item before it is written; nil writes items as-is.
	view func(T) T
}

func (o resourceOptions[T]) fetch(ctx context.Context, repo resource.Repo[T], query url.Values) ([]T, error) {
	if o.list == nil {
		return repo.List(ctx)
	}
	return o.list(ctx, repo, query)
}

func (o resourceOptions[T]) show(item T) T {
	if o.view == nil {
		return item
	}
	return o.view(item)
}

func (o resourceOptions[T]) showAll(items []T) []T {
	if o.view == nil {
		return items
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = o.view(item)
	}
	return out
}

// userOptions hides passwords and supports ?active=true.
var userOptions = resourceOptions[users.User]{
	list: func(ctx context.Context, repo resource.Repo[users.User], query url.Values) ([]users.User, error) {
		if query.Get("active") == "true" {
			return users.ListActive(ctx, repo)
		}
		return repo.List(ctx)
	},
	view: users.User.WithoutPassword,
}

// listHandler fetches the whole collection and pages it locally using the
// query string (page, pageSize, sort, order, search).
func listHandler[T model](s *Server, repo repoFactory[T], fields listing.Fields[T], opts resourceOptions[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		query := listing.ParseQuery(values)
		respond(s, w, r, http.StatusOK, func(c *gateway.Client) (listing.Page[T], error) {
			items, err := opts.fetch(r.Context(), repo(c), values)
			if err != nil {
				return listing.Page[T]{}, err
			}
			return listing.Apply(opts.showAll(items), query, fields), nil
		})
	}
}

func getHandler[T model](s *Server, repo repoFactory[T], opts resourceOptions[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		respond(s, w, r, http.StatusOK, func(c *gateway.Client) (T, error) {
			item, err := repo(c).Get(r.Context(), id)
			return opts.show(item), err
		})
	}
}

func createHandler[T model](s *Server, repo repoFactory[T], opts resourceOptions[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := decodeJSON(w, r, &item); err != nil {
			writeAPIError(w, r, err)
			return
		}
		if err := item.Validate(); err != nil {
			writeAPIError(w, r, err)
			return
		}
		respond(s, w, r, http.StatusCreated, func(c *gateway.Client) (T, error) {
			created, err := repo(c).Create(r.Context(), item)
			return opts.show(created), err
		})
	}
}

func updateHandler[T model](s *Server, repo repoFactory[T], opts resourceOptions[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var item T
		if err := decodeJSON(w, r, &item); err != nil {
			writeAPIError(w, r, err)
			return
		}
		if err := item.Validate(); err != nil {
			writeAPIError(w, r, err)
			return
		}
		respond(s, w, r, http.StatusOK, func(c *gateway.Client) (T, error) {
			updated, err := repo(c).Update(r.Context(), id, item)
			return opts.show(updated), err
		})
	}
}

func deleteHandler[T model](s *Server, repo repoFactory[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		respond(s, w, r, http.StatusNoContent, func(c *gateway.Client) (struct{}, error) {
			return struct{}{}, repo(c).Delete(r.Context(), id)
		})
	}
}

type quotePartsResponse struct {
	Parts []parts.Part `json:"parts"`
	Total float64      `json:"total"`
}

// QuotePartsHandler lists the parts on a quote with their combined total.
func (s *Server) QuotePartsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		respond(s, w, r, http.StatusOK, func(c *gateway.Client) (quotePartsResponse, error) {
			ps, err := quotes.NewRepo(c).Parts(r.Context(), id)
			if err != nil {
				return quotePartsResponse{}, err
			}
			return quotePartsResponse{Parts: ps, Total: quotes.Total(ps)}, nil
		})
	}
}
