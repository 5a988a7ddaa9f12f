package resource_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jrsteele09/quote-admin/gateway"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
	"github.com/jrsteele09/quote-admin/resource"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// recordingDoer answers every request with response and remembers what it was asked.
type recordingDoer struct {
	requests []gateway.Request
	response string
	err      error
}

func (d *recordingDoer) Do(_ context.Context, req gateway.Request, out any) error {
	d.requests = append(d.requests, req)
	if d.err != nil {
		return d.err
	}
	if out == nil || d.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(d.response), out)
}

func TestCollectionRequests(t *testing.T) {
	ctx := context.Background()
	doer := &recordingDoer{}
	widgets := resource.NewCollection[widget](doer, "/widgets/")
	require.Equal(t, "widgets", widgets.Path())

	doer.response = `[{"id":"w-1","name":"one"},{"id":"w-2","name":"two"}]`
	list, err := widgets.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	doer.response = `{"id":"w 1","name":"one"}`
	got, err := widgets.Get(ctx, "w 1")
	require.NoError(t, err)
	require.Equal(t, "one", got.Name)

	doer.response = `{"id":"w-3","name":"three"}`
	created, err := widgets.Create(ctx, widget{Name: "three"})
	require.NoError(t, err)
	require.Equal(t, "w-3", created.ID)

	doer.response = `{"id":"w-3","name":"THREE"}`
	updated, err := widgets.Update(ctx, "w-3", widget{Name: "THREE"})
	require.NoError(t, err)
	require.Equal(t, "THREE", updated.Name)

	doer.response = ""
	require.NoError(t, widgets.Delete(ctx, "w-3"))

	want := []struct {
		method string
		path   string
		body   bool
	}{
		{http.MethodGet, "widgets", false},
		{http.MethodGet, "widgets/w%201", false},
		{http.MethodPost, "widgets", true},
		{http.MethodPut, "widgets/w-3", true},
		{http.MethodDelete, "widgets/w-3", false},
	}
	require.Len(t, doer.requests, len(want))
	for i, w := range want {
		require.Equal(t, w.method, doer.requests[i].Method)
		require.Equal(t, w.path, doer.requests[i].Path)
		require.Equal(t, w.body, doer.requests[i].Body != nil)
	}
}

func TestEmptyListIsNotNil(t *testing.T) {
	widgets := resource.NewCollection[widget](&recordingDoer{}, "widgets")
	list, err := widgets.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestEmptyIDNeverCallsTheAPI(t *testing.T) {
	ctx := context.Background()
	doer := &recordingDoer{}
	widgets := resource.NewCollection[widget](doer, "widgets")

	_, err := widgets.Get(ctx, " ")
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	_, err = widgets.Update(ctx, "", widget{})
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	require.ErrorIs(t, widgets.Delete(ctx, ""), apperrors.ErrInvalidRequest)
	_, err = widgets.ItemPath("")
	require.ErrorIs(t, err, apperrors.ErrInvalidRequest)

	require.Empty(t, doer.requests)
}

func TestErrorsKeepTheirKind(t *testing.T) {
	doer := &recordingDoer{err: &gateway.Error{Kind: gateway.InvalidRefreshToken, Err: errors.New("401")}}
	widgets := resource.NewCollection[widget](doer, "widgets")

	_, err := widgets.List(context.Background())
	require.True(t, gateway.IsInvalidRefreshToken(err))
	require.Contains(t, err.Error(), "[widgets List]")
}

func TestItemPath(t *testing.T) {
	widgets := resource.NewCollection[widget](&recordingDoer{}, "widgets")
	path, err := widgets.ItemPath("w/1", "parts")
	require.NoError(t, err)
	require.Equal(t, "widgets/w%2F1/parts", path)
}
