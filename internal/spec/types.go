package spec

import "fmt"

// ClusterID identifies a cluster within the specification.
type ClusterID uint32

// DeviceTypeID identifies a device type within the specification.
type DeviceTypeID uint32

// Hex returns the conventional hexadecimal form, e.g. "0x0100".
func (id DeviceTypeID) Hex() string {
	return fmt.Sprintf("0x%04X", uint32(id))
}

// Hex returns the conventional hexadecimal form, e.g. "0x0006".
func (id ClusterID) Hex() string {
	return fmt.Sprintf("0x%04X", uint32(id))
}

// systemDeviceTypeMax is the first non-system device type id. Device
// types below this value (root node, power source, bridged node and the
// other utility classifications) describe plumbing rather than
// user-facing function and are excluded from scoring.
const systemDeviceTypeMax DeviceTypeID = 0x0100

// IsSystemDeviceType reports whether the id is a utility/system
// classification rather than an application device type.
func IsSystemDeviceType(id DeviceTypeID) bool {
	return id < systemDeviceTypeMax
}

// Default scoring weights. Mandatory coverage dominates; optional
// coverage rewards going beyond the minimum.
const (
	DefaultWeightMandatoryServer = 0.40
	DefaultWeightMandatoryClient = 0.20
	DefaultWeightOptionalServer  = 0.25
	DefaultWeightOptionalClient  = 0.15
)

// ScoringWeights are the fully-resolved weights used by the scoring
// engine for one device type.
type ScoringWeights struct {
	MandatoryServer float64 `json:"mandatoryServer"`
	MandatoryClient float64 `json:"mandatoryClient"`
	OptionalServer  float64 `json:"optionalServer"`
	OptionalClient  float64 `json:"optionalClient"`

	// KeyClientClusters are client clusters whose presence earns a
	// bonus on top of the weighted composite.
	KeyClientClusters []ClusterID `json:"keyClientClusters,omitempty"`

	// KeyClientBonus is the bonus fraction (0.1 = up to 10 points).
	KeyClientBonus float64 `json:"keyClientBonus"`
}

// DefaultWeights returns the standard weight set applied when a device
// type declares no override.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		MandatoryServer: DefaultWeightMandatoryServer,
		MandatoryClient: DefaultWeightMandatoryClient,
		OptionalServer:  DefaultWeightOptionalServer,
		OptionalClient:  DefaultWeightOptionalClient,
	}
}

// WeightOverride is a partial weight specification attached to a device
// type. Pointer fields distinguish "not set" from an explicit zero, so
// overrides merge field-by-field over the defaults rather than
// replacing them wholesale.
type WeightOverride struct {
	MandatoryServer   *float64    `json:"mandatoryServer,omitempty"`
	MandatoryClient   *float64    `json:"mandatoryClient,omitempty"`
	OptionalServer    *float64    `json:"optionalServer,omitempty"`
	OptionalClient    *float64    `json:"optionalClient,omitempty"`
	KeyClientClusters []ClusterID `json:"keyClientClusters,omitempty"`
	KeyClientBonus    *float64    `json:"keyClientBonus,omitempty"`
}

// Resolve merges the override over the default weights. Fields left nil
// keep their default value.
func (o *WeightOverride) Resolve() ScoringWeights {
	w := DefaultWeights()
	if o == nil {
		return w
	}
	if o.MandatoryServer != nil {
		w.MandatoryServer = *o.MandatoryServer
	}
	if o.MandatoryClient != nil {
		w.MandatoryClient = *o.MandatoryClient
	}
	if o.OptionalServer != nil {
		w.OptionalServer = *o.OptionalServer
	}
	if o.OptionalClient != nil {
		w.OptionalClient = *o.OptionalClient
	}
	if len(o.KeyClientClusters) > 0 {
		w.KeyClientClusters = append([]ClusterID(nil), o.KeyClientClusters...)
	}
	if o.KeyClientBonus != nil {
		w.KeyClientBonus = *o.KeyClientBonus
	}
	return w
}

// DeviceTypeSpec defines the requirements and display metadata for one
// specification device type.
type DeviceTypeSpec struct {
	ID              DeviceTypeID `json:"id"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	DisplayCategory string       `json:"displayCategory,omitempty"`
	Icon            string       `json:"icon,omitempty"`
	Description     string       `json:"description,omitempty"`
	SpecVersion     string       `json:"specVersion,omitempty"`

	MandatoryServer []ClusterID `json:"mandatoryServer,omitempty"`
	OptionalServer  []ClusterID `json:"optionalServer,omitempty"`
	MandatoryClient []ClusterID `json:"mandatoryClient,omitempty"`
	OptionalClient  []ClusterID `json:"optionalClient,omitempty"`

	// Weights is a partial override; nil means pure defaults.
	Weights *WeightOverride `json:"scoringWeights,omitempty"`
}

// ScoringWeights returns the fully-resolved weights for this device type.
func (d *DeviceTypeSpec) ScoringWeights() ScoringWeights {
	return d.Weights.Resolve()
}

// CommandDirection indicates which side initiates a cluster command.
type CommandDirection string

// Command directions.
const (
	// DirectionClientToServer marks commands sent by the initiator to
	// the target (e.g. On, Off).
	DirectionClientToServer CommandDirection = "clientToServer"

	// DirectionServerToClient marks responses generated by the target.
	DirectionServerToClient CommandDirection = "serverToClient"
)

// AttributeSpec defines one attribute of a cluster.
type AttributeSpec struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	Optional bool   `json:"optional,omitempty"`

	// FeatureBit gates an optional attribute behind a cluster feature:
	// the attribute is only expected when that bit is set in the
	// cluster's feature map. nil means always applicable.
	FeatureBit *uint8 `json:"featureBit,omitempty"`
}

// CommandSpec defines one command of a cluster.
type CommandSpec struct {
	ID        uint32           `json:"id"`
	Name      string           `json:"name"`
	Direction CommandDirection `json:"direction"`
	Optional  bool             `json:"optional,omitempty"`

	// FeatureBit gates an optional command behind a cluster feature.
	FeatureBit *uint8 `json:"featureBit,omitempty"`
}

// FeatureSpec names one bit of a cluster's feature map.
type FeatureSpec struct {
	Bit  uint8  `json:"bit"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Mask returns the feature's bit as a mask value.
func (f FeatureSpec) Mask() uint32 {
	return 1 << f.Bit
}

// ClusterSpec defines one cluster: its identity, its attribute and
// command catalogues, and its named feature bits.
type ClusterSpec struct {
	ID          ClusterID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	SpecVersion string    `json:"specVersion,omitempty"`

	// Global marks utility clusters (Descriptor, Binding) that appear
	// on every endpoint, as opposed to application clusters.
	Global bool `json:"global,omitempty"`

	Attributes []AttributeSpec `json:"attributes,omitempty"`
	Commands   []CommandSpec   `json:"commands,omitempty"`
	Features   []FeatureSpec   `json:"features,omitempty"`
}

// Feature looks up a feature by its short code.
func (c *ClusterSpec) Feature(code string) (FeatureSpec, bool) {
	for _, f := range c.Features {
		if f.Code == code {
			return f, true
		}
	}
	return FeatureSpec{}, false
}
