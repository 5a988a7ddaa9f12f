package gateway

// Result is the uniform shape page-level fetchers hand to the dashboard.
// Signout is set when the session is no longer usable.
type Result[T any] struct {
	Result  T    `json:"result"`
	Signout bool `json:"signout,omitempty"`
}

// Adapt folds a gateway outcome into a Result. InvalidRefreshToken becomes
// {signout: true} with a nil error; any other error is returned unchanged.
func Adapt[T any](value T, err error) (Result[T], error) {
	if err == nil {
		return Result[T]{Result: value}, nil
	}
	if IsInvalidRefreshToken(err) {
		return Result[T]{Signout: true}, nil
	}
	return Result[T]{}, err
}

// Fetch runs fn with the client and adapts its outcome.
func Fetch[T any](c *Client, fn func(*Client) (T, error)) (Result[T], error) {
	return Adapt(fn(c))
}
