// Package http serves the blog REST API.
//
// Routes are mounted on a chi router in routes.go. Every request passes
// through trace id, access log, compression and timeout middleware, and
// identify, which turns a valid session cookie into a user in the request
// context. Mutating routes are additionally wrapped in auth and answer 401
// without a session. Ownership checks happen in the service layer; handlers
// only translate service errors to statuses through errorStatusMap.
package http
