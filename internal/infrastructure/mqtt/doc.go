// Package mqtt wraps paho.mqtt.golang for MatterGrade Core.
//
// Telemetry collectors publish device observations to the broker and
// Core publishes computed scores back. The client provides connection
// management with automatic reconnection, subscription restoration, and
// panic-safe message handlers.
//
// Lifecycle:
//
//	client, err := mqtt.Connect(cfg)
//	defer client.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package mqtt
