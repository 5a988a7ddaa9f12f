package quotes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/quote-admin/gateway"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/internal/utils"
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/parts"
	"github.com/jrsteele09/quote-admin/quotes"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := gateway.New(srv.URL, &gateway.Session{AccessToken: "token"})
	require.NoError(t, err)
	return client
}

func TestQuoteParts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quotes/{id}/parts", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "q-7", r.PathValue("id"))
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"p-1","partNumber":"BR-100","unitPrice":2.5,"quantity":4},{"id":"p-2","partNumber":"BO-8","unitPrice":0.5,"quantity":10}]`))
	})
	repo := quotes.NewRepo(newClient(t, mux))

	ps, err := repo.Parts(context.Background(), "q-7")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	require.InDelta(t, 15.0, quotes.Total(ps), 0.0001)

	_, err = repo.Parts(context.Background(), "")
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestQuoteListAndSort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quotes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"q-1","reference":"Q-1","customer":"Acme","status":"sent","total":120},
			{"id":"q-2","reference":"Q-2","customer":"Birch Ltd","status":"draft","total":80},
			{"id":"q-3","reference":"Q-3","customer":"acme north","status":"accepted","total":300}
		]`))
	})
	repo := quotes.NewRepo(newClient(t, mux))

	all, err := repo.List(context.Background())
	require.NoError(t, err)

	page := listing.Apply(all, listing.Query{Search: "acme", SortBy: "total", Desc: true}, quotes.Fields)
	require.Equal(t, 2, page.Total)
	require.Equal(t, "q-3", page.Items[0].ID)
	require.Equal(t, "q-1", page.Items[1].ID)
}

func TestQuoteValidate(t *testing.T) {
	tests := []struct {
		name    string
		quote   quotes.Quote
		wantErr bool
	}{
		{"valid", quotes.Quote{Customer: "Acme", Status: quotes.StatusDraft}, false},
		{"no status", quotes.Quote{Customer: "Acme"}, false},
		{"missing customer", quotes.Quote{Status: quotes.StatusSent}, true},
		{"bad status", quotes.Quote{Customer: "Acme", Status: "lost"}, true},
		{"negative total", quotes.Quote{Customer: "Acme", Total: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quote.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTotalOfNoParts(t *testing.T) {
	require.Zero(t, quotes.Total(nil))
	require.InDelta(t, 7.5, quotes.Total([]parts.Part{{UnitPrice: 2.5, Quantity: 3}}), 0.0001)
}

func TestSortByCreatedAtHandlesMissingDates(t *testing.T) {
	early := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	late := early.Add(48 * time.Hour)
	qs := []quotes.Quote{
		{ID: "late", CreatedAt: utils.Ptr(late)},
		{ID: "none"},
		{ID: "early", CreatedAt: utils.Ptr(early)},
	}
	listing.Sort(qs, "createdAt", false, quotes.Fields)
	require.Equal(t, []string{"none", "early", "late"}, []string{qs[0].ID, qs[1].ID, qs[2].ID})
}
