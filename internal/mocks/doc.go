// Package mocks provides test doubles for the store, service and event
// interfaces so packages can be tested without their real collaborators.
package mocks
