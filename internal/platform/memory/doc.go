// Package memory provides in-process implementations of the store
// interfaces. Data lives for the lifetime of the process only.
package memory
