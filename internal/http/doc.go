// Package http provides HTTP handlers and middleware for the scheduler API.
//
// The router exposes the following endpoints under /api:
//   - GET /api/health: liveness probe, optionally pinging storage.
//   - GET /api/slots: all active recurring slots.
//   - GET /api/slots/week/{date}: the week containing {date} resolved into
//     seven day entries with exceptions applied.
//   - POST /api/slots: creates a recurring slot. Body:
//     {"day_of_week","start_time","end_time"}.
//   - PUT /api/slots/{id}/date/{date}: overrides a single occurrence with new
//     times. Body: {"start_time","end_time"}.
//   - DELETE /api/slots/{id}/date/{date}: cancels a single occurrence.
//   - DELETE /api/slots/{id}: deactivates the whole recurring slot.
//   - GET /api/slots/{id}/exceptions: stored overrides for one slot.
//
// Every response is wrapped in the same envelope: successes carry
// {"success":true,"data":...,"message":...} and failures carry
// {"success":false,"error":{"message":...,"details":...}}.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
