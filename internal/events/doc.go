// Package events provides types and interfaces for task lifecycle events.
//
// The task service emits an event after every accepted callback. Handlers
// subscribed to the Dispatcher react to it without the service knowing about
// them; today the only handler records the intent to notify the client.
//
// The primary components are:
// - TaskEvent: a task was created or updated by a callback
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
