// Package service implements the task lifecycle on top of the store: the
// create-or-update applied for each callback, and the read operations used
// by polling clients. It sits between the HTTP handlers and the store and
// publishes task events for downstream handlers.
package service
