// Package scorecache maintains the derived per-device score rows.
//
// The cache is purely derived state: every row can be recomputed from a
// device's stored observations and the specification registry, so
// writes are last-writer-wins and a bulk rebuild can run concurrently
// with live recomputation without coordination.
package scorecache
