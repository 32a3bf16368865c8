package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteDeviceScore records one score datapoint for a device.
//
// Called after every recompute, so the series tracks how a device's
// score moved across firmware versions and specification updates. The
// write is non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteDeviceScore(deviceID string, score float64, stars int, compliant bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"device_score",
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"score":     score,
			"stars":     stars,
			"compliant": compliant,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
