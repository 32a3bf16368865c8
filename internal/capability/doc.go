// Package capability derives user-facing capability labels from device
// observations, independently of compliance scoring.
//
// A capability definition names the clusters that evidence it, each
// with the role the cluster must appear in. Presence of any one trigger
// cluster is enough. Some capabilities additionally require named
// feature bits; those checks only apply when the telemetry carried a
// feature map for the cluster, otherwise detection degrades to
// presence-only so devices reported by older collectors are not marked
// down for data their collector never sent.
package capability
