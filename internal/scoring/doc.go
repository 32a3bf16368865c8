// Package scoring turns device observations into compliance and
// capability scores.
//
// The pipeline runs in three stages. Gap analysis compares what an
// endpoint implements against what its declared device types require.
// Per-type scoring converts a gap into a weighted 0 to 100 score with a
// star rating. Aggregation folds every scoreable device type on a
// device into a single headline score, and the version evaluator
// replays that aggregation across a device's stored firmware history to
// find the best release.
package scoring
