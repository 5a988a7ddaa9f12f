package server

import (
	"github.com/jrsteele09/quote-admin/listing"
	"github.com/jrsteele09/quote-admin/parts"
	"github.com/jrsteele09/quote-admin/quotes"
	"github.com/jrsteele09/quote-admin/resource"
	"github.com/jrsteele09/quote-admin/rows"
	"github.com/jrsteele09/quote-admin/users"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.StdMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	// LOGIN
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteAuthLogin, ChainMiddleware(noContent, s.AuthMiddleware()...))

	// Dashboard API routes (require a login session)
	s.RegisterRouteHandler("GET "+RouteAPISession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	quoteRepo := func(d resource.Doer) resource.Repo[quotes.Quote] { return quotes.NewRepo(d) }
	registerResource[quotes.Quote](s, RouteAPIQuotes, quoteRepo, quotes.Fields, resourceOptions[quotes.Quote]{})
	s.RegisterRouteHandler("GET "+RouteAPIQuotes+routeQuoteParts, ChainMiddleware(s.QuotePartsHandler(), s.APIMiddleware()...))

	registerResource[parts.Part](s, RouteAPIParts, parts.NewRepo, parts.Fields, resourceOptions[parts.Part]{})
	registerResource[rows.Row](s, RouteAPIRows, rows.NewRepo, rows.Fields, resourceOptions[rows.Row]{})
	registerResource[users.User](s, RouteAPIUsers, users.NewRepo, users.Fields, userOptions)
}

// registerResource wires list/create on route and get/update/delete on route/{id}.
func registerResource[T model](s *Server, route string, repo repoFactory[T], fields listing.Fields[T], opts resourceOptions[T]) {
	s.RegisterRouteHandler("GET "+route, ChainMiddleware(listHandler(s, repo, fields, opts), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+route, ChainMiddleware(createHandler(s, repo, opts), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+route+routeItem, ChainMiddleware(getHandler(s, repo, opts), s.APIMiddleware()...))
	s.RegisterRouteHandler("PUT "+route+routeItem, ChainMiddleware(updateHandler(s, repo, opts), s.APIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+route+routeItem, ChainMiddleware(deleteHandler(s, repo), s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+route, ChainMiddleware(noContent, s.PreflightMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+route+routeItem, ChainMiddleware(noContent, s.PreflightMiddleware()...))
}
