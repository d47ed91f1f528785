// Package services provides domain services that hold business rules spanning more
// than one model: the caller's role from the access model and the ownership recorded
// on the Order aggregate.
//
// The package includes:
//   - OrderAccessPolicy: decides which caller may run which order operation
//
// Every check returns an errs.ForbiddenError on refusal and is evaluated before any
// mutation is attempted.
package services
