// Package api serves the advisor over HTTP with fiber.
//
// Routes:
//
//	POST /api/wrap       run one advisor turn for a wrap and conversation
//	GET  /check/healthy  liveness plus corpus state
//
// Errors are rendered by ErrorHandler as {"error": ..., "detail": ...}.
package api
