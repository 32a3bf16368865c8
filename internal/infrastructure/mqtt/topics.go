package mqtt

import "fmt"

// Topic prefixes per the MatterGrade MQTT layout.
//
// Collector topics use the flat scheme: mattergrade/{category}/{id}.
const (
	// TopicPrefix is the base for all MatterGrade topics.
	TopicPrefix = "mattergrade"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "mattergrade/system"
)

// Topics provides builders for MatterGrade MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	topic := topics.Telemetry("collector-7f")
//	// Returns: "mattergrade/telemetry/collector-7f"
type Topics struct{}

// Telemetry returns the topic a collector publishes submissions on.
//
// Example: mattergrade/telemetry/collector-7f
func (Topics) Telemetry(collectorID string) string {
	return fmt.Sprintf("%s/telemetry/%s", TopicPrefix, collectorID)
}

// AllTelemetry returns the wildcard pattern matching every collector's
// telemetry topic.
func (Topics) AllTelemetry() string {
	return TopicPrefix + "/telemetry/+"
}

// DeviceScore returns the topic a device's computed score is published
// on. Messages are retained so late subscribers see the current score.
//
// Example: mattergrade/scores/9f2c1a
func (Topics) DeviceScore(deviceID string) string {
	return fmt.Sprintf("%s/scores/%s", TopicPrefix, deviceID)
}

// SystemStatus returns the topic for Core online/offline status.
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
