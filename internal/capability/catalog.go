package capability

import "github.com/mattergrade/mattergrade-core/internal/spec"

// Role is the side of a cluster relationship a trigger looks for.
type Role string

const (
	RoleServer Role = "server"
	RoleClient Role = "client"
)

// Trigger names one cluster whose presence in the given role evidences
// a capability. A definition's triggers combine with OR semantics.
type Trigger struct {
	Cluster spec.ClusterID `json:"cluster"`
	Role    Role           `json:"role"`
}

// FeatureRequirement names a feature bit that must be set in a
// cluster's feature map, when one was reported, for the capability to
// count as supported.
type FeatureRequirement struct {
	Cluster spec.ClusterID `json:"cluster"`
	Code    string         `json:"code"`
	Bit     uint8          `json:"bit"`
}

// Definition describes one user-facing capability.
type Definition struct {
	Key              string               `json:"key"`
	Label            string               `json:"label"`
	Icon             string               `json:"icon"`
	Description      string               `json:"description"`
	Category         string               `json:"category"`
	Triggers         []Trigger            `json:"triggers"`
	RequiredFeatures []FeatureRequirement `json:"requiredFeatures,omitempty"`
}

// DefaultCatalog returns the built-in capability definitions. Order is
// significant: results iterate in catalog order so rendered output is
// stable.
func DefaultCatalog() []Definition {
	return []Definition{
		{
			Key:         "on_off",
			Label:       "On/Off Control",
			Icon:        "power",
			Description: "Can be switched on and off.",
			Category:    "general",
			Triggers:    []Trigger{{Cluster: 0x0006, Role: RoleServer}},
		},
		{
			Key:         "remote_control",
			Label:       "Controls Other Devices",
			Icon:        "remote",
			Description: "Acts as a controller for other devices.",
			Category:    "general",
			Triggers: []Trigger{
				{Cluster: 0x0006, Role: RoleClient},
				{Cluster: 0x0008, Role: RoleClient},
			},
		},
		{
			Key:         "grouping",
			Label:       "Group Membership",
			Icon:        "layers",
			Description: "Can join groups for coordinated control.",
			Category:    "general",
			Triggers:    []Trigger{{Cluster: 0x0004, Role: RoleServer}},
		},
		{
			Key:         "scenes",
			Label:       "Scene Support",
			Icon:        "bookmark",
			Description: "Can store and recall scenes.",
			Category:    "general",
			Triggers:    []Trigger{{Cluster: 0x0062, Role: RoleServer}},
		},
		{
			Key:         "dimming",
			Label:       "Dimming",
			Icon:        "brightness",
			Description: "Brightness is adjustable.",
			Category:    "lighting",
			Triggers:    []Trigger{{Cluster: 0x0008, Role: RoleServer}},
		},
		{
			Key:         "color_hue_saturation",
			Label:       "Full Color",
			Icon:        "palette",
			Description: "Color is adjustable by hue and saturation.",
			Category:    "lighting",
			Triggers:    []Trigger{{Cluster: 0x0300, Role: RoleServer}},
			RequiredFeatures: []FeatureRequirement{
				{Cluster: 0x0300, Code: "HS", Bit: 0},
			},
		},
		{
			Key:         "color_temperature",
			Label:       "Tunable White",
			Icon:        "thermometer-sun",
			Description: "White color temperature is adjustable.",
			Category:    "lighting",
			Triggers:    []Trigger{{Cluster: 0x0300, Role: RoleServer}},
			RequiredFeatures: []FeatureRequirement{
				{Cluster: 0x0300, Code: "CT", Bit: 4},
			},
		},
		{
			Key:         "thermostat_control",
			Label:       "Thermostat",
			Icon:        "thermostat",
			Description: "Heating or cooling setpoints can be controlled.",
			Category:    "climate",
			Triggers:    []Trigger{{Cluster: 0x0201, Role: RoleServer}},
		},
		{
			Key:         "thermostat_scheduling",
			Label:       "Schedules",
			Icon:        "calendar",
			Description: "Supports weekly heating and cooling schedules.",
			Category:    "climate",
			Triggers:    []Trigger{{Cluster: 0x0201, Role: RoleServer}},
			RequiredFeatures: []FeatureRequirement{
				{Cluster: 0x0201, Code: "SCH", Bit: 3},
			},
		},
		{
			Key:         "fan_control",
			Label:       "Fan Control",
			Icon:        "fan",
			Description: "Fan speed and mode can be controlled.",
			Category:    "climate",
			Triggers:    []Trigger{{Cluster: 0x0202, Role: RoleServer}},
		},
		{
			Key:         "covering_lift",
			Label:       "Open/Close",
			Icon:        "blinds",
			Description: "Can be raised and lowered.",
			Category:    "covering",
			Triggers:    []Trigger{{Cluster: 0x0102, Role: RoleServer}},
			RequiredFeatures: []FeatureRequirement{
				{Cluster: 0x0102, Code: "LF", Bit: 0},
			},
		},
		{
			Key:         "covering_tilt",
			Label:       "Tilt",
			Icon:        "blinds-tilt",
			Description: "Slat tilt is adjustable.",
			Category:    "covering",
			Triggers:    []Trigger{{Cluster: 0x0102, Role: RoleServer}},
			RequiredFeatures: []FeatureRequirement{
				{Cluster: 0x0102, Code: "TL", Bit: 1},
			},
		},
		{
			Key:         "temperature_sensing",
			Label:       "Temperature Sensing",
			Icon:        "thermometer",
			Description: "Reports ambient temperature.",
			Category:    "sensing",
			Triggers:    []Trigger{{Cluster: 0x0402, Role: RoleServer}},
		},
		{
			Key:         "humidity_sensing",
			Label:       "Humidity Sensing",
			Icon:        "droplet",
			Description: "Reports relative humidity.",
			Category:    "sensing",
			Triggers:    []Trigger{{Cluster: 0x0405, Role: RoleServer}},
		},
		{
			Key:         "illuminance_sensing",
			Label:       "Light Sensing",
			Icon:        "sun",
			Description: "Reports ambient light level.",
			Category:    "sensing",
			Triggers:    []Trigger{{Cluster: 0x0400, Role: RoleServer}},
		},
		{
			Key:         "occupancy_sensing",
			Label:       "Occupancy Sensing",
			Icon:        "motion",
			Description: "Reports whether the space is occupied.",
			Category:    "sensing",
			Triggers:    []Trigger{{Cluster: 0x0406, Role: RoleServer}},
		},
	}
}

// Standout and missing selection works off hand-curated priority lists.
// Keys appear most-interesting first; the first three supported keys
// become standouts and the first three unsupported become notable gaps.
// The lists are editorial judgement, not derived from data.
var categoryPriorities = map[string][]string{
	"lighting": {"color_hue_saturation", "color_temperature", "dimming", "scenes", "on_off"},
	"climate":  {"thermostat_scheduling", "fan_control", "thermostat_control", "temperature_sensing", "humidity_sensing"},
	"covering": {"covering_tilt", "covering_lift", "scenes", "on_off"},
	"sensing":  {"occupancy_sensing", "temperature_sensing", "humidity_sensing", "illuminance_sensing"},
	"power":    {"on_off", "dimming", "scenes", "grouping"},
	"general":  {"on_off", "remote_control", "dimming", "scenes", "grouping"},
}
