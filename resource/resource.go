// Package resource maps a remote API collection onto typed CRUD calls.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/quote-admin/gateway"
	apperrors "github.com/jrsteele09/quote-admin/internal/errors"
)

// Doer is satisfied by *gateway.Client.
type Doer interface {
	Do(ctx context.Context, req gateway.Request, out any) error
}

// Repo is the set of operations the dashboard performs on a collection.
type Repo[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Collection talks to <base>/<path> and <base>/<path>/<id>.
type Collection[T any] struct {
	client Doer
	path   string
}

var _ Repo[struct{}] = (*Collection[struct{}])(nil)

func NewCollection[T any](client Doer, path string) *Collection[T] {
	return &Collection[T]{client: client, path: strings.Trim(path, "/")}
}

func (c *Collection[T]) Path() string {
	return c.path
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := c.client.Do(ctx, gateway.Request{Method: http.MethodGet, Path: c.path}, &items); err != nil {
		return nil, fmt.Errorf("[%s List] %w", c.path, err)
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	path, err := c.itemPath(id)
	if err != nil {
		return item, err
	}
	if err := c.client.Do(ctx, gateway.Request{Method: http.MethodGet, Path: path}, &item); err != nil {
		return item, fmt.Errorf("[%s Get] %w", c.path, err)
	}
	return item, nil
}

func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	if err := c.client.Do(ctx, gateway.Request{Method: http.MethodPost, Path: c.path, Body: item}, &created); err != nil {
		return created, fmt.Errorf("[%s Create] %w", c.path, err)
	}
	return created, nil
}

func (c *Collection[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var updated T
	path, err := c.itemPath(id)
	if err != nil {
		return updated, err
	}
	if err := c.client.Do(ctx, gateway.Request{Method: http.MethodPut, Path: path, Body: item}, &updated); err != nil {
		return updated, fmt.Errorf("[%s Update] %w", c.path, err)
	}
	return updated, nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	path, err := c.itemPath(id)
	if err != nil {
		return err
	}
	if err := c.client.Do(ctx, gateway.Request{Method: http.MethodDelete, Path: path}, nil); err != nil {
		return fmt.Errorf("[%s Delete] %w", c.path, err)
	}
	return nil
}

// ItemPath builds <path>/<id>/<sub...>, escaping each segment.
func (c *Collection[T]) ItemPath(id string, sub ...string) (string, error) {
	path, err := c.itemPath(id)
	if err != nil {
		return "", err
	}
	for _, s := range sub {
		path += "/" + url.PathEscape(s)
	}
	return path, nil
}

func (c *Collection[T]) itemPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRequest, "[%s] empty id", c.path)
	}
	return c.path + "/" + url.PathEscape(id), nil
}
