// Package gobec reads the public gob.ec API (https://www.gob.ec/api/v1).
//
// The API serves two paginated listings and one detail endpoint:
//
//   - GET /instituciones?page={n}
//   - GET /tramites?institution={id}&page={n}
//   - GET /tramites/{id}
//
// Listings answer either a bare JSON array or an object with a "results"
// array. There is no total count; an empty page marks the end of data.
//
// The client performs no retries. A failed page aborts the caller; a failed
// detail is reported through domain.DetailResult so the caller can skip it.
package gobec
