// Package domain contains the task entity, its status values, and the
// validation errors shared by the service and API layers.
package domain
