package spec

// Seed catalogue: the built-in baseline the registry starts from before
// synced rows are applied. Covers the device types and clusters commonly
// seen in household telemetry; the sync job fills in the long tail.

// bit returns a pointer to a feature bit value, for gating optional
// attributes and commands.
func bit(b uint8) *uint8 { return &b }

func weight(v float64) *float64 { return &v }

// SeedDeviceTypes returns the built-in device type catalogue.
func SeedDeviceTypes() []DeviceTypeSpec {
	return []DeviceTypeSpec{
		{
			ID:              0x0100,
			Name:            "On/Off Light",
			Category:        "lighting",
			DisplayCategory: "Lighting",
			Icon:            "lightbulb",
			Description:     "A light that can be switched on and off.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0006, 0x0062},
			OptionalServer:  []ClusterID{0x0008, 0x0406},
		},
		{
			ID:              0x0101,
			Name:            "Dimmable Light",
			Category:        "lighting",
			DisplayCategory: "Lighting",
			Icon:            "lightbulb",
			Description:     "A light with adjustable brightness.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0006, 0x0008, 0x0062},
			OptionalServer:  []ClusterID{0x0406},
		},
		{
			ID:              0x010C,
			Name:            "Color Temperature Light",
			Category:        "lighting",
			DisplayCategory: "Lighting",
			Icon:            "lightbulb",
			Description:     "A dimmable light with adjustable white color temperature.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0006, 0x0008, 0x0062, 0x0300},
		},
		{
			ID:              0x010D,
			Name:            "Extended Color Light",
			Category:        "lighting",
			DisplayCategory: "Lighting",
			Icon:            "lightbulb",
			Description:     "A full-color dimmable light.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0006, 0x0008, 0x0062, 0x0300},
		},
		{
			ID:              0x0103,
			Name:            "On/Off Light Switch",
			Category:        "lighting",
			DisplayCategory: "Controls",
			Icon:            "toggle-on",
			Description:     "A wall switch that controls other lights.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003},
			MandatoryClient: []ClusterID{0x0006},
			OptionalClient:  []ClusterID{0x0003, 0x0004, 0x0008, 0x0062},
			// A switch's worth lives in what it can control, so the
			// client axes outweigh the server axes here.
			Weights: &WeightOverride{
				MandatoryServer:   weight(0.20),
				MandatoryClient:   weight(0.40),
				KeyClientClusters: []ClusterID{0x0006},
				KeyClientBonus:    weight(0.05),
			},
		},
		{
			ID:              0x010A,
			Name:            "On/Off Plug-in Unit",
			Category:        "power",
			DisplayCategory: "Power",
			Icon:            "plug",
			Description:     "A smart plug or in-line switch module.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0006, 0x0062},
			OptionalServer:  []ClusterID{0x0008},
		},
		{
			ID:              0x0202,
			Name:            "Window Covering",
			Category:        "covering",
			DisplayCategory: "Coverings",
			Icon:            "blinds",
			Description:     "A motorised blind, shade, or curtain.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0004, 0x0102},
			OptionalServer:  []ClusterID{0x0062},
		},
		{
			ID:              0x0301,
			Name:            "Thermostat",
			Category:        "climate",
			DisplayCategory: "Climate",
			Icon:            "thermostat",
			Description:     "A thermostat controlling heating and/or cooling.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0201},
			OptionalServer:  []ClusterID{0x0004, 0x0062, 0x0204},
			OptionalClient:  []ClusterID{0x0202, 0x0402, 0x0405},
			// Remote temperature and fan control integration are the
			// capabilities that separate good thermostats from basic
			// ones; reward them with a bonus.
			Weights: &WeightOverride{
				KeyClientClusters: []ClusterID{0x0202, 0x0402},
				KeyClientBonus:    weight(0.1),
			},
		},
		{
			ID:              0x0302,
			Name:            "Temperature Sensor",
			Category:        "sensing",
			DisplayCategory: "Sensors",
			Icon:            "thermometer",
			Description:     "A sensor reporting ambient temperature.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0402},
		},
		{
			ID:              0x0307,
			Name:            "Humidity Sensor",
			Category:        "sensing",
			DisplayCategory: "Sensors",
			Icon:            "droplet",
			Description:     "A sensor reporting relative humidity.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0405},
		},
		{
			ID:              0x0106,
			Name:            "Light Sensor",
			Category:        "sensing",
			DisplayCategory: "Sensors",
			Icon:            "sun",
			Description:     "A sensor reporting ambient light level.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0400},
		},
		{
			ID:              0x0107,
			Name:            "Occupancy Sensor",
			Category:        "sensing",
			DisplayCategory: "Sensors",
			Icon:            "motion",
			Description:     "A sensor reporting room occupancy.",
			SpecVersion:     "1.3",
			MandatoryServer: []ClusterID{0x0003, 0x0406},
		},
	}
}

// SeedClusters returns the built-in cluster catalogue, including the
// attribute/command catalogues and named feature bits the capability
// detector relies on.
func SeedClusters() []ClusterSpec {
	return []ClusterSpec{
		{
			ID:          0x0003,
			Name:        "Identify",
			Category:    "general",
			Description: "Puts a device into a visually identifiable state.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "IdentifyTime"},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "Identify", Direction: DirectionClientToServer},
				{ID: 0x40, Name: "TriggerEffect", Direction: DirectionClientToServer, Optional: true},
			},
		},
		{
			ID:          0x0004,
			Name:        "Groups",
			Category:    "general",
			Description: "Manages group membership for bound control.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "NameSupport"},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "AddGroup", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "ViewGroup", Direction: DirectionClientToServer},
				{ID: 0x03, Name: "RemoveGroup", Direction: DirectionClientToServer},
				{ID: 0x04, Name: "RemoveAllGroups", Direction: DirectionClientToServer},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "GN", Name: "Group Names"},
			},
		},
		{
			ID:          0x0006,
			Name:        "On/Off",
			Category:    "lighting",
			Description: "Basic on/off control of a device.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "OnOff"},
				{ID: 0x4000, Name: "GlobalSceneControl", Optional: true, FeatureBit: bit(0)},
				{ID: 0x4001, Name: "OnTime", Optional: true, FeatureBit: bit(0)},
				{ID: 0x4002, Name: "OffWaitTime", Optional: true, FeatureBit: bit(0)},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "Off", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "On", Direction: DirectionClientToServer},
				{ID: 0x02, Name: "Toggle", Direction: DirectionClientToServer},
				{ID: 0x40, Name: "OffWithEffect", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(0)},
				{ID: 0x42, Name: "OnWithTimedOff", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(0)},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "LT", Name: "Lighting"},
				{Bit: 1, Code: "DF", Name: "Dead Front Behavior"},
				{Bit: 2, Code: "OFFONLY", Name: "Off Only"},
			},
		},
		{
			ID:          0x0008,
			Name:        "Level Control",
			Category:    "lighting",
			Description: "Adjusts a level such as brightness or speed.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "CurrentLevel"},
				{ID: 0x0001, Name: "RemainingTime", Optional: true, FeatureBit: bit(1)},
				{ID: 0x0011, Name: "OnLevel", Optional: true},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "MoveToLevel", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "Move", Direction: DirectionClientToServer},
				{ID: 0x02, Name: "Step", Direction: DirectionClientToServer},
				{ID: 0x03, Name: "Stop", Direction: DirectionClientToServer},
				{ID: 0x04, Name: "MoveToLevelWithOnOff", Direction: DirectionClientToServer},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "OO", Name: "On/Off"},
				{Bit: 1, Code: "LT", Name: "Lighting"},
				{Bit: 2, Code: "FQ", Name: "Frequency"},
			},
		},
		{
			ID:          0x001D,
			Name:        "Descriptor",
			Category:    "general",
			Global:      true,
			Description: "Describes an endpoint's device types and cluster lists.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "DeviceTypeList"},
				{ID: 0x0001, Name: "ServerList"},
				{ID: 0x0002, Name: "ClientList"},
				{ID: 0x0003, Name: "PartsList"},
			},
		},
		{
			ID:          0x0062,
			Name:        "Scenes Management",
			Category:    "general",
			Description: "Stores and recalls named device states.",
			Attributes: []AttributeSpec{
				{ID: 0x0001, Name: "SceneTableSize"},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "AddScene", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "ViewScene", Direction: DirectionClientToServer},
				{ID: 0x02, Name: "RemoveScene", Direction: DirectionClientToServer},
				{ID: 0x05, Name: "RecallScene", Direction: DirectionClientToServer},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "SN", Name: "Scene Names"},
			},
		},
		{
			ID:          0x0102,
			Name:        "Window Covering",
			Category:    "covering",
			Description: "Controls lift and tilt of blinds, shades, and curtains.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "Type"},
				{ID: 0x000E, Name: "CurrentPositionLiftPercent100ths", Optional: true, FeatureBit: bit(2)},
				{ID: 0x000F, Name: "CurrentPositionTiltPercent100ths", Optional: true, FeatureBit: bit(4)},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "UpOrOpen", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "DownOrClose", Direction: DirectionClientToServer},
				{ID: 0x02, Name: "StopMotion", Direction: DirectionClientToServer},
				{ID: 0x05, Name: "GoToLiftPercentage", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(0)},
				{ID: 0x08, Name: "GoToTiltPercentage", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(1)},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "LF", Name: "Lift"},
				{Bit: 1, Code: "TL", Name: "Tilt"},
				{Bit: 2, Code: "PA_LF", Name: "Position Aware Lift"},
				{Bit: 4, Code: "PA_TL", Name: "Position Aware Tilt"},
			},
		},
		{
			ID:          0x0201,
			Name:        "Thermostat",
			Category:    "climate",
			Description: "Heating and cooling setpoint control.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "LocalTemperature"},
				{ID: 0x0011, Name: "OccupiedCoolingSetpoint", Optional: true, FeatureBit: bit(1)},
				{ID: 0x0012, Name: "OccupiedHeatingSetpoint", Optional: true, FeatureBit: bit(0)},
				{ID: 0x001B, Name: "ControlSequenceOfOperation"},
				{ID: 0x001C, Name: "SystemMode"},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "SetpointRaiseLower", Direction: DirectionClientToServer},
				{ID: 0x01, Name: "SetWeeklySchedule", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(3)},
				{ID: 0x02, Name: "GetWeeklySchedule", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(3)},
				{ID: 0x00, Name: "GetWeeklyScheduleResponse", Direction: DirectionServerToClient, Optional: true, FeatureBit: bit(3)},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "HEAT", Name: "Heating"},
				{Bit: 1, Code: "COOL", Name: "Cooling"},
				{Bit: 2, Code: "OCC", Name: "Occupancy"},
				{Bit: 3, Code: "SCH", Name: "Schedule Configuration"},
				{Bit: 4, Code: "SB", Name: "Setback"},
				{Bit: 5, Code: "AUTO", Name: "Auto Mode"},
			},
		},
		{
			ID:          0x0202,
			Name:        "Fan Control",
			Category:    "climate",
			Description: "Fan speed and mode control.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "FanMode"},
				{ID: 0x0004, Name: "SpeedMax", Optional: true, FeatureBit: bit(0)},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "Step", Direction: DirectionClientToServer, Optional: true},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "SPD", Name: "Multi Speed"},
				{Bit: 1, Code: "AUT", Name: "Auto"},
				{Bit: 2, Code: "RCK", Name: "Rocking"},
				{Bit: 3, Code: "WND", Name: "Wind"},
			},
		},
		{
			ID:          0x0300,
			Name:        "Color Control",
			Category:    "lighting",
			Description: "Hue, saturation, XY, and color temperature control.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "CurrentHue", Optional: true, FeatureBit: bit(0)},
				{ID: 0x0001, Name: "CurrentSaturation", Optional: true, FeatureBit: bit(0)},
				{ID: 0x0003, Name: "CurrentX", Optional: true, FeatureBit: bit(3)},
				{ID: 0x0004, Name: "CurrentY", Optional: true, FeatureBit: bit(3)},
				{ID: 0x0007, Name: "ColorTemperatureMireds", Optional: true, FeatureBit: bit(4)},
				{ID: 0x0008, Name: "ColorMode"},
			},
			Commands: []CommandSpec{
				{ID: 0x00, Name: "MoveToHue", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(0)},
				{ID: 0x06, Name: "MoveToHueAndSaturation", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(0)},
				{ID: 0x07, Name: "MoveToColor", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(3)},
				{ID: 0x0A, Name: "MoveToColorTemperature", Direction: DirectionClientToServer, Optional: true, FeatureBit: bit(4)},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "HS", Name: "Hue/Saturation"},
				{Bit: 1, Code: "EHUE", Name: "Enhanced Hue"},
				{Bit: 2, Code: "CL", Name: "Color Loop"},
				{Bit: 3, Code: "XY", Name: "XY"},
				{Bit: 4, Code: "CT", Name: "Color Temperature"},
			},
		},
		{
			ID:          0x0400,
			Name:        "Illuminance Measurement",
			Category:    "sensing",
			Description: "Reports ambient light level.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "MeasuredValue"},
			},
		},
		{
			ID:          0x0402,
			Name:        "Temperature Measurement",
			Category:    "sensing",
			Description: "Reports ambient temperature.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "MeasuredValue"},
			},
		},
		{
			ID:          0x0405,
			Name:        "Relative Humidity Measurement",
			Category:    "sensing",
			Description: "Reports relative humidity.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "MeasuredValue"},
			},
		},
		{
			ID:          0x0406,
			Name:        "Occupancy Sensing",
			Category:    "sensing",
			Description: "Reports whether a space is occupied.",
			Attributes: []AttributeSpec{
				{ID: 0x0000, Name: "Occupancy"},
			},
			Features: []FeatureSpec{
				{Bit: 0, Code: "PIR", Name: "Passive Infrared"},
				{Bit: 1, Code: "US", Name: "Ultrasonic"},
				{Bit: 2, Code: "PHY", Name: "Physical Contact"},
			},
		},
	}
}
