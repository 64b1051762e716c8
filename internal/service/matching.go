package service

import (
	"insuretrack/internal/domain/entity"
	"insuretrack/internal/utils"
	"strings"
)

const allTradesMarker = "all trades"

// tierPriority ranks program tiers from most to least critical. When a
// subcontractor's trades match rows in several tiers, only the highest
// ranked tier applies (plus state-mandated rows). Unknown tiers rank
// below every listed one.
var tierPriority = []string{
	"foundation",
	"roofing",
	"exterior",
	"structural",
	"mep",
	"interior",
	"low-risk",
}

// MatchRequirements returns every requirement row of a program that
// applies to the given comma-separated trade list.
//
// A row applies when its applicable-trades list names "All Trades",
// or when any normalized trade token of the subcontractor appears in
// (or contains) the row's applicable-trades list, trade name or scope.
// Catch-all rows ("all other" in the trade name or scope) apply only
// when no trade-specific row matched.
func MatchRequirements(trades string, rows []*entity.SubInsuranceRequirement) []*entity.SubInsuranceRequirement {
	tokens := utils.SplitTrades(trades)

	var matched []*entity.SubInsuranceRequirement
	var catchAll []*entity.SubInsuranceRequirement
	explicitHit := false

	for _, row := range rows {
		switch {
		case isAllTradesRow(row):
			matched = append(matched, row)

		case isCatchAllRow(row):
			catchAll = append(catchAll, row)

		case rowMatchesTokens(row, tokens):
			matched = append(matched, row)
			explicitHit = true
		}
	}

	if !explicitHit {
		matched = append(matched, catchAll...)
	}
	return matched
}

// HighestTierRequirements reduces a matched set to the rows of the
// highest-priority tier present, keeping state-mandated rows
// regardless of tier.
func HighestTierRequirements(rows []*entity.SubInsuranceRequirement) []*entity.SubInsuranceRequirement {
	best := -1
	for _, row := range rows {
		rank := tierRank(row.Tier)
		if rank >= 0 && (best == -1 || rank < best) {
			best = rank
		}
	}

	if best == -1 {
		return rows
	}

	var kept []*entity.SubInsuranceRequirement
	for _, row := range rows {
		if row.StateMandated || tierRank(row.Tier) == best {
			kept = append(kept, row)
		}
	}
	return kept
}

func tierRank(tier string) int {
	lowered := strings.ToLower(tier)
	for i, name := range tierPriority {
		if strings.Contains(lowered, name) {
			return i
		}
	}
	return -1
}

func isAllTradesRow(row *entity.SubInsuranceRequirement) bool {
	for _, t := range utils.SplitTrades(row.ApplicableTrades) {
		if t == allTradesMarker {
			return true
		}
	}
	return false
}

func isCatchAllRow(row *entity.SubInsuranceRequirement) bool {
	return strings.Contains(strings.ToLower(row.TradeName), "all other") ||
		strings.Contains(strings.ToLower(row.Scope), "all other")
}

// rowMatchesTokens checks each subcontractor trade token against the
// row's applicable-trades tokens (substring both directions) and its
// free-text trade name and scope.
func rowMatchesTokens(row *entity.SubInsuranceRequirement, tokens []string) bool {
	rowTokens := utils.SplitTrades(row.ApplicableTrades)
	tradeName := strings.ToLower(row.TradeName)
	scope := strings.ToLower(row.Scope)

	for _, token := range tokens {
		for _, rowToken := range rowTokens {
			if strings.Contains(rowToken, token) || strings.Contains(token, rowToken) {
				return true
			}
		}

		if tradeName != "" && (strings.Contains(tradeName, token) || strings.Contains(token, tradeName)) {
			return true
		}
		if scope != "" && strings.Contains(scope, token) {
			return true
		}
	}
	return false
}
