package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mattergrade/mattergrade-core/internal/spec"
)

// ClusterDetail carries the optional rich view of a single cluster on an
// endpoint. FeatureMap is a pointer so that an absent field can be told
// apart from a reported value of zero: older collectors omit it entirely,
// meaning "unknown", while zero means "no features enabled".
type ClusterDetail struct {
	ClusterID         spec.ClusterID `json:"clusterId"`
	FeatureMap        *uint32        `json:"featureMap,omitempty"`
	AttributeList     []uint32       `json:"attributeList,omitempty"`
	AcceptedCommands  []uint32       `json:"acceptedCommands,omitempty"`
	GeneratedCommands []uint32       `json:"generatedCommands,omitempty"`
}

// HasFeature reports whether the given feature bit is set. When no
// feature map was reported the answer is unknowable and callers fall
// back to coarser presence checks.
func (d ClusterDetail) HasFeature(bit uint8) bool {
	if d.FeatureMap == nil {
		return false
	}
	return *d.FeatureMap&(1<<bit) != 0
}

// DeviceTypeList is a list of device type ids with lenient decoding.
// Collectors have shipped two wire shapes over time: a bare array of
// numbers, and an array of objects with a "deviceType" field (some with
// an accompanying revision). Entries that match neither shape are
// dropped individually.
type DeviceTypeList []spec.DeviceTypeID

func (l *DeviceTypeList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("telemetry: device type list is not an array: %w", err)
	}

	out := make(DeviceTypeList, 0, len(raw))
	for _, entry := range raw {
		var id uint32
		if err := json.Unmarshal(entry, &id); err == nil {
			out = append(out, spec.DeviceTypeID(id))
			continue
		}
		var obj struct {
			DeviceType *uint32 `json:"deviceType"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && obj.DeviceType != nil {
			out = append(out, spec.DeviceTypeID(*obj.DeviceType))
			continue
		}
		// Unrecognised entry shape; skip it.
	}
	*l = out
	return nil
}

// EndpointObservation is what a device reported about one endpoint.
// Endpoint 0 is the root node endpoint and carries utility clusters
// rather than application function.
type EndpointObservation struct {
	EndpointID     uint16           `json:"endpointId"`
	DeviceTypes    DeviceTypeList   `json:"deviceTypes"`
	ServerClusters []spec.ClusterID `json:"serverClusters,omitempty"`
	ClientClusters []spec.ClusterID `json:"clientClusters,omitempty"`

	// Optional rich per-cluster records, present only when the
	// collector speaks the newer telemetry schema.
	ServerClusterDetails []ClusterDetail `json:"serverClusterDetails,omitempty"`
	ClientClusterDetails []ClusterDetail `json:"clientClusterDetails,omitempty"`
}

// HasServerCluster reports whether the endpoint lists the cluster as a server.
func (e EndpointObservation) HasServerCluster(id spec.ClusterID) bool {
	for _, c := range e.ServerClusters {
		if c == id {
			return true
		}
	}
	return false
}

// Device is the stable identity a submission attaches to.
type Device struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Vendor    string    `json:"vendor,omitempty"`
	Product   string    `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Submission is one full telemetry report for a device. DeviceID may be
// empty, in which case ingest assigns one.
type Submission struct {
	DeviceID        string                `json:"deviceId"`
	Name            string                `json:"name,omitempty"`
	Vendor          string                `json:"vendor,omitempty"`
	Product         string                `json:"product,omitempty"`
	HardwareVersion string                `json:"hardwareVersion"`
	SoftwareVersion string                `json:"softwareVersion"`
	Endpoints       []EndpointObservation `json:"endpoints"`
	ReportedAt      time.Time             `json:"reportedAt,omitempty"`
}

// Version is a persisted firmware/hardware snapshot of a device. A
// device accumulates one version row per distinct hardware/software
// pair; resubmissions of a known pair replace the stored endpoints.
type Version struct {
	ID              int64                 `json:"id"`
	DeviceID        string                `json:"deviceId"`
	HardwareVersion string                `json:"hardwareVersion"`
	SoftwareVersion string                `json:"softwareVersion"`
	Endpoints       []EndpointObservation `json:"endpoints"`
	ReportedAt      time.Time             `json:"reportedAt"`
}

// Label returns the human-readable version pair, e.g. "1.0/2.3.1".
func (v Version) Label() string {
	return v.HardwareVersion + "/" + v.SoftwareVersion
}
