package types

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// Severity is the possible extent of harm, S0 (no injuries) to S3 (life-threatening)
type Severity int

const (
	S0 Severity = iota
	S1
	S2
	S3
)

// Exposure is the probability of the operational situation, E0 (incredible) to E4 (high)
type Exposure int

const (
	E0 Exposure = iota
	E1
	E2
	E3
	E4
)

// Controllability is the driver's ability to avoid harm, C0 (controllable) to C3 (difficult)
type Controllability int

const (
	C0 Controllability = iota
	C1
	C2
	C3
)

// AllSeverities returns S0..S3 in ascending order
func AllSeverities() []Severity {
	return []Severity{S0, S1, S2, S3}
}

// AllExposures returns E0..E4 in ascending order
func AllExposures() []Exposure {
	return []Exposure{E0, E1, E2, E3, E4}
}

// AllControllabilities returns C0..C3 in ascending order
func AllControllabilities() []Controllability {
	return []Controllability{C0, C1, C2, C3}
}

// Validate checks if the severity is within S0..S3
func (s Severity) Validate() error {
	if s < S0 || s > S3 {
		return goerr.New("severity must be between 0 and 3", goerr.V("severity", int(s)))
	}
	return nil
}

func (s Severity) String() string {
	return fmt.Sprintf("S%d", int(s))
}

// Validate checks if the exposure is within E0..E4
func (e Exposure) Validate() error {
	if e < E0 || e > E4 {
		return goerr.New("exposure must be between 0 and 4", goerr.V("exposure", int(e)))
	}
	return nil
}

func (e Exposure) String() string {
	return fmt.Sprintf("E%d", int(e))
}

// Validate checks if the controllability is within C0..C3
func (c Controllability) Validate() error {
	if c < C0 || c > C3 {
		return goerr.New("controllability must be between 0 and 3", goerr.V("controllability", int(c)))
	}
	return nil
}

func (c Controllability) String() string {
	return fmt.Sprintf("C%d", int(c))
}

// Rating is the S/E/C classification of one hazardous event
type Rating struct {
	Severity        Severity        `json:"s" toml:"s"`
	Exposure        Exposure        `json:"e" toml:"e"`
	Controllability Controllability `json:"c" toml:"c"`
}

// NewRating builds a Rating from raw integers and validates the ranges
func NewRating(s, e, c int) (Rating, error) {
	r := Rating{
		Severity:        Severity(s),
		Exposure:        Exposure(e),
		Controllability: Controllability(c),
	}
	if err := r.Validate(); err != nil {
		return Rating{}, err
	}
	return r, nil
}

// Validate checks all three components
func (r Rating) Validate() error {
	if err := r.Severity.Validate(); err != nil {
		return goerr.Wrap(err, "invalid rating")
	}
	if err := r.Exposure.Validate(); err != nil {
		return goerr.Wrap(err, "invalid rating")
	}
	if err := r.Controllability.Validate(); err != nil {
		return goerr.Wrap(err, "invalid rating")
	}
	return nil
}

// ASIL returns the classification derived from the rating
func (r Rating) ASIL() ASIL {
	return Classify(r.Severity, r.Exposure, r.Controllability)
}
