// Package influxdb provides the score-history time series client.
//
// Every score recompute writes one datapoint, giving dashboards a
// longitudinal view of how a device's compliance evolved across
// firmware updates. Writes are non-blocking and batched; the score
// cache in SQLite remains the source of truth and this sink is
// optional.
package influxdb
