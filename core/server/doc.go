// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// listening port, the API key checked by the auth middleware, and the request
// body limit applied to the Fiber app (workbook uploads are the largest bodies).
package server
