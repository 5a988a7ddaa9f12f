package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex   = "/{$}"
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Auth Routes - Login & Logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// API Routes
	RouteAPISession = "/api/session"
	RouteAPIQuotes  = "/api/quotes"
	RouteAPIParts   = "/api/parts"
	RouteAPIRows    = "/api/rows"
	RouteAPIUsers   = "/api/users"

	// Item and sub-collection suffixes
	routeItem       = "/{id}"
	routeQuoteParts = "/{id}/parts"
)
