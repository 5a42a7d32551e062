// Package auth resolves the caller identity for the books routes.
//
// Clients obtain a signed token from POST /session. The token is returned in
// the response body and also set as an HttpOnly cookie, so both API clients
// (Authorization: Bearer <token>) and browsers (cookie) are supported.
//
// Protect a route group with the middleware:
//
//	mw := auth.NewMiddleware(tokens, cfg.CookieName)
//	books := api.Group("", mw.Handler())
//
// Then read the caller inside handlers:
//
//	userID, ok := auth.UserID(c)
package auth
