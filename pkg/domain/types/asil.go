package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ASIL is the Automotive Safety Integrity Level. Values are ordered from the least
// stringent (QM) to the most stringent (D).
type ASIL int

const (
	ASILQM ASIL = iota
	ASILA
	ASILB
	ASILC
	ASILD
)

var asilNames = []string{"QM", "A", "B", "C", "D"}

// AllASILs returns every level in ascending stringency
func AllASILs() []ASIL {
	return []ASIL{ASILQM, ASILA, ASILB, ASILC, ASILD}
}

// IsValid checks if the level is one of QM, A, B, C, D
func (a ASIL) IsValid() bool {
	return a >= ASILQM && a <= ASILD
}

func (a ASIL) String() string {
	if !a.IsValid() {
		return "unknown"
	}
	return asilNames[a]
}

// Label is the table form, e.g. "ASIL D" or "ASIL QM"
func (a ASIL) Label() string {
	return "ASIL " + a.String()
}

// MarshalText implements encoding.TextMarshaler
func (a ASIL) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, goerr.New("invalid ASIL", goerr.V("asil", int(a)))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *ASIL) UnmarshalText(text []byte) error {
	v, err := ParseASIL(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseASIL parses "QM", "A".."D"
func ParseASIL(s string) (ASIL, error) {
	for i, name := range asilNames {
		if name == s {
			return ASIL(i), nil
		}
	}
	return ASILQM, goerr.New("invalid ASIL", goerr.V("asil", s))
}

// Calibration anchors. These combinations must map exactly.
var asilAnchors = map[Rating]ASIL{
	{Severity: S3, Exposure: E4, Controllability: C3}: ASILD,
	{Severity: S2, Exposure: E3, Controllability: C1}: ASILB,
	{Severity: S1, Exposure: E2, Controllability: C0}: ASILQM,
}

// Classify maps a severity/exposure/controllability triple to an ASIL.
//
// It is not the normative ISO 26262 table. Each severity tier has a base level
// (S1: QM, S2: A, S3: B) that steps up one level when E >= 2 and C >= 1, and two
// levels when E >= 3 and C >= 2. S0 is always QM. The result never decreases when
// any single input increases.
func Classify(s Severity, e Exposure, c Controllability) ASIL {
	if v, ok := asilAnchors[Rating{Severity: s, Exposure: e, Controllability: c}]; ok {
		return v
	}

	var base ASIL
	switch {
	case s >= S3:
		base = ASILB
	case s == S2:
		base = ASILA
	case s == S1:
		base = ASILQM
	default:
		return ASILQM
	}

	switch {
	case e >= E3 && c >= C2:
		return base + 2
	case e >= E2 && c >= C1:
		return base + 1
	default:
		return base
	}
}
