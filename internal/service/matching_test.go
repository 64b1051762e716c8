package service

import (
	"testing"

	"insuretrack/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(id, tier, tradeName, applicable, scope string) *entity.SubInsuranceRequirement {
	return &entity.SubInsuranceRequirement{
		ID:               id,
		Tier:             tier,
		TradeName:        tradeName,
		ApplicableTrades: applicable,
		Scope:            scope,
		InsuranceType:    "General Liability",
	}
}

func ids(rows []*entity.SubInsuranceRequirement) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestMatchRequirementsSubstringTrades(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "MEP", "Electrical", "Electrical, Low Voltage", ""),
		req("r2", "Roofing", "Roofing", "Roofing", ""),
	}

	matched := MatchRequirements("Electrical Contractor", rows)
	assert.Equal(t, []string{"r1"}, ids(matched))
}

func TestMatchRequirementsAllTradesAlwaysApplies(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "", "Workers Comp", "All Trades", ""),
		req("r2", "Roofing", "Roofing", "Roofing", ""),
	}

	matched := MatchRequirements("plumbing", rows)
	assert.Equal(t, []string{"r1"}, ids(matched))
}

func TestMatchRequirementsCatchAllOnlyWithoutExplicitHit(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "Low-Risk", "All Other Trades", "", ""),
		req("r2", "MEP", "Plumbing", "Plumbing", ""),
	}

	// Explicit match wins, the catch-all stays out.
	matched := MatchRequirements("plumbing", rows)
	assert.Equal(t, []string{"r2"}, ids(matched))

	// No explicit match: the catch-all applies.
	matched = MatchRequirements("landscaping", rows)
	assert.Equal(t, []string{"r1"}, ids(matched))
}

func TestMatchRequirementsScopeText(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "Structural", "Steel Erection", "", "structural steel, welding, decking"),
	}

	matched := MatchRequirements("Welding", rows)
	assert.Equal(t, []string{"r1"}, ids(matched))
}

func TestHighestTierRequirementsPicksMostCritical(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "Foundation", "Excavation", "Excavation", ""),
		req("r2", "Interior", "Drywall", "Drywall", ""),
		req("r3", "Foundation", "Shoring", "Shoring", ""),
	}

	kept := HighestTierRequirements(rows)
	assert.ElementsMatch(t, []string{"r1", "r3"}, ids(kept))
}

func TestHighestTierRequirementsKeepsStateMandated(t *testing.T) {
	stateRow := req("r2", "Interior", "Drywall", "Drywall", "")
	stateRow.StateMandated = true

	rows := []*entity.SubInsuranceRequirement{
		req("r1", "Roofing", "Roofing", "Roofing", ""),
		stateRow,
	}

	kept := HighestTierRequirements(rows)
	assert.ElementsMatch(t, []string{"r1", "r2"}, ids(kept))
}

func TestHighestTierRequirementsUnrankedTiersPassThrough(t *testing.T) {
	rows := []*entity.SubInsuranceRequirement{
		req("r1", "Custom Tier A", "A", "A", ""),
		req("r2", "Custom Tier B", "B", "B", ""),
	}

	kept := HighestTierRequirements(rows)
	require.Len(t, kept, 2)
}

func TestTierRankOrdering(t *testing.T) {
	assert.Less(t, tierRank("Foundation"), tierRank("Roofing"))
	assert.Less(t, tierRank("Roofing"), tierRank("MEP"))
	assert.Less(t, tierRank("MEP"), tierRank("Interior"))
	assert.Less(t, tierRank("Interior"), tierRank("Low-Risk"))
	assert.Equal(t, -1, tierRank("Unheard Of"))
}
