package telemetry

import "errors"

var (
	// ErrDeviceNotFound indicates the device id has never been seen.
	ErrDeviceNotFound = errors.New("telemetry: device not found")

	// ErrVersionNotFound indicates the device has no stored versions.
	ErrVersionNotFound = errors.New("telemetry: version not found")

	// ErrNoEndpoints indicates a submission carried no endpoint data.
	ErrNoEndpoints = errors.New("telemetry: submission has no endpoints")
)
