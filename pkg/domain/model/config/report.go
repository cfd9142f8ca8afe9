package config

// HazardEntry is a configured baseline hazard before classification
type HazardEntry struct {
	ID                   string `toml:"id"`
	MalfunctionBehavior  string `toml:"malfunction_behavior"`
	OperationalSituation string `toml:"operational_situation"`
	HazardDescription    string `toml:"hazard_description"`
	S                    int    `toml:"s"`
	E                    int    `toml:"e"`
	C                    int    `toml:"c"`
	SafetyGoal           string `toml:"safety_goal"`
}

// ReportConfig holds the fixed content of a generated report
type ReportConfig struct {
	PhaseLabel        string
	Baseline          []HazardEntry
	SafetyGoalSummary []string
}

const DefaultPhaseLabel = "This report is the official output of the Concept Phase (ISO 26262)."

// DefaultBaseline returns the canonical LKAS hazardous events
func DefaultBaseline() []HazardEntry {
	return []HazardEntry{
		{
			ID:                   "H-201",
			MalfunctionBehavior:  "Uncommanded Steering",
			OperationalSituation: "Vehicle in lane-keeping at highway speeds",
			HazardDescription:    "System applies unintended steering torque causing lane departure or collision",
			S:                    3,
			E:                    4,
			C:                    3,
			SafetyGoal:           "SG-1: Prevent unintended steering torque beyond driver intent",
		},
		{
			ID:                   "H-202",
			MalfunctionBehavior:  "Loss of Assistance",
			OperationalSituation: "Curved road segment requiring lane centering",
			HazardDescription:    "Assist not available leading to degraded lane keeping and driver workload",
			S:                    2,
			E:                    3,
			C:                    1,
			SafetyGoal:           "SG-2: Maintain controllable assist availability or prompt safe takeover",
		},
		{
			ID:                   "H-203",
			MalfunctionBehavior:  "Steering Vibration Malfunction",
			OperationalSituation: "Urban low-speed driving",
			HazardDescription:    "Erroneous haptic vibration without steering actuation",
			S:                    1,
			E:                    2,
			C:                    0,
			SafetyGoal:           "Handled under QM processes; no ASIL safety goal required",
		},
	}
}

// DefaultSafetyGoalSummary returns the closing summary lines of the report
func DefaultSafetyGoalSummary() []string {
	return []string{
		"- **SG-1 (ASIL D)**: Prevent unintended steering torque beyond driver intent — FTTI: [TBD]",
		"- **SG-2 (ASIL B)**: Maintain controllable assist availability or prompt safe takeover — FTTI: [TBD]",
	}
}

// DefaultReportConfig returns the built-in report content
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		PhaseLabel:        DefaultPhaseLabel,
		Baseline:          DefaultBaseline(),
		SafetyGoalSummary: DefaultSafetyGoalSummary(),
	}
}
