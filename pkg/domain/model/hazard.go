package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/hara/pkg/domain/model/config"
	"github.com/secmon-lab/hara/pkg/domain/types"
)

// HazardRow is one hazardous event of a HARA table. The ASIL is always derived from
// the rating; construct rows with NewHazardRow.
type HazardRow struct {
	ID                   string
	MalfunctionBehavior  string
	OperationalSituation string
	HazardDescription    string
	Rating               types.Rating
	SafetyGoal           string

	asil types.ASIL
}

// NewHazardRow validates the rating and classifies it
func NewHazardRow(id, malfunction, situation, description string, rating types.Rating, safetyGoal string) (HazardRow, error) {
	if err := rating.Validate(); err != nil {
		return HazardRow{}, goerr.Wrap(err, "invalid hazard rating", goerr.V("id", id))
	}
	return HazardRow{
		ID:                   id,
		MalfunctionBehavior:  malfunction,
		OperationalSituation: situation,
		HazardDescription:    description,
		Rating:               rating,
		SafetyGoal:           safetyGoal,
		asil:                 rating.ASIL(),
	}, nil
}

// ASIL returns the classification derived from Rating
func (x HazardRow) ASIL() types.ASIL {
	return x.asil
}

// ProposedHazard is a hazardous event suggested by an external source. Its ratings
// are raw integers; the classification is never taken from the proposal.
type ProposedHazard struct {
	ID                   string `json:"id"`
	MalfunctionBehavior  string `json:"malfunctionBehavior"`
	OperationalSituation string `json:"operationalSituation"`
	HazardDescription    string `json:"hazardDescription"`
	S                    int    `json:"s"`
	E                    int    `json:"e"`
	C                    int    `json:"c"`
	SafetyGoal           string `json:"safetyGoal"`
}

// ToRow classifies the proposal
func (x ProposedHazard) ToRow() (HazardRow, error) {
	rating, err := types.NewRating(x.S, x.E, x.C)
	if err != nil {
		return HazardRow{}, goerr.Wrap(err, "invalid proposed hazard", goerr.V("id", x.ID))
	}
	return NewHazardRow(x.ID, x.MalfunctionBehavior, x.OperationalSituation, x.HazardDescription, rating, x.SafetyGoal)
}

// BaselineRows converts configured hazard entries into classified rows
func BaselineRows(entries []config.HazardEntry) ([]HazardRow, error) {
	rows := make([]HazardRow, 0, len(entries))
	for _, e := range entries {
		row, err := ProposedHazard(e).ToRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MergeHazards appends proposals to the baseline. A proposal is dropped when its ID or
// its malfunction behavior (case-insensitive) is already present in the merged list,
// or when its rating is out of range.
func MergeHazards(baseline []HazardRow, proposed []ProposedHazard) []HazardRow {
	merged := make([]HazardRow, len(baseline), len(baseline)+len(proposed))
	copy(merged, baseline)

	ids := make(map[string]struct{}, cap(merged))
	behaviors := make(map[string]struct{}, cap(merged))
	for _, r := range merged {
		ids[r.ID] = struct{}{}
		behaviors[strings.ToLower(r.MalfunctionBehavior)] = struct{}{}
	}

	for _, p := range proposed {
		if _, ok := ids[p.ID]; ok {
			continue
		}
		key := strings.ToLower(p.MalfunctionBehavior)
		if _, ok := behaviors[key]; ok {
			continue
		}
		row, err := p.ToRow()
		if err != nil {
			continue
		}
		merged = append(merged, row)
		ids[row.ID] = struct{}{}
		behaviors[key] = struct{}{}
	}
	return merged
}
