// Package telemetry defines the device observation model and its
// persistence. A submission describes what a device reported about
// itself: its endpoints, the device types each endpoint declares, the
// server and client clusters it implements, and optionally per-cluster
// detail such as the feature map and command lists.
//
// Submissions arrive over HTTP or MQTT from heterogeneous collectors,
// some of which predate the richer wire format, so parsing is lenient:
// malformed device type entries are skipped rather than rejecting the
// whole submission, and absent detail fields degrade to coarser
// interpretations downstream.
package telemetry
