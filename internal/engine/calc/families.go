package calc

import (
	"strings"

	"github.com/Anishcapital/Arbitrage/internal/pkg/models"
)

// threeWayMarkers are market-name terms that imply a three-outcome
// market when "handicap"/"total" don't apply.
var threeWayMarkers = []string{"1x2", "winner", "double chance"}

// DetectFamily classifies a market by its identifier. The market name
// is a collaborator input (the matched file name), not something the
// calculator derives from the outcome data.
func DetectFamily(marketID string) models.Family {
	name := strings.ToLower(marketID)
	if strings.Contains(name, "handicap") {
		return models.FamilyHandicap
	}
	if strings.Contains(name, "total") {
		return models.FamilyTotal
	}
	for _, term := range threeWayMarkers {
		if strings.Contains(name, term) {
			return models.FamilyThreeWay
		}
	}
	return models.FamilyTwoWay
}
