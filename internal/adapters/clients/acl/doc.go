// Package acl is the anti-corruption layer between the devotional HTTP API's
// wire format and the domain model.
//
// Wire DTOs are unexported and never leave this package. Responses are
// translated into domain types, and failures are translated into domain errors:
//
//   - 404 or code NOT_FOUND → [domain.ErrNotFound]
//   - other 4xx, VALIDATION_ERROR or BAD_REQUEST → [domain.ErrValidation]
//   - 429, 5xx, transport failures, [clients.ErrCircuitOpen] and
//     [clients.ErrMaxRetriesExceeded] → [domain.ErrUnavailable]
//
// An [APIError] keeps the message the API reported so that callers can show it
// verbatim.
package acl
