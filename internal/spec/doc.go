// Package spec provides the specification registry for MatterGrade Core.
//
// The registry is the catalogue of device-type and cluster definitions
// the scoring and capability engines evaluate telemetry against: which
// server/client clusters a device type must or may implement, which
// named feature bits a cluster defines, and per-device-type scoring
// weight overrides.
//
// # Architecture
//
// The registry is an immutable in-memory structure assembled once at
// startup: a built-in seed catalogue provides the baseline, and rows
// synced into SQLite by the external specification-sync job override or
// extend it. After Load() returns, nothing mutates the registry; the
// Gap Analyzer, Scoring Engine, and Capability Detector all receive it
// as an explicit read-only dependency, which keeps them trivially
// testable with a hand-built registry.
//
// # Usage
//
//	store := spec.NewSQLiteStore(db)
//	registry, err := spec.Load(ctx, store)
//	if err != nil {
//	    return err
//	}
//
//	dt, ok := registry.DeviceType(0x0100) // On/Off Light
//	cl, ok := registry.Cluster(0x0006)    // On/Off
package spec
