// Package ratelimit enforces a fixed request quota per key (normally a
// client address) over a time window, in process memory.
//
// The limiter is an admission gate, not a shaping queue: a request either
// fits in the current window or is rejected immediately.
package ratelimit
