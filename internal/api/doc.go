// Package api handles incoming HTTP requests for the callback receiver:
// the generic and Nano Banana callbacks, task queries, and liveness
// endpoints. Handlers decode and validate requests, delegate to
// service.TaskService, and translate errors with HandleAPIError.
package api
