package service

import (
	"fmt"

	"github.com/kowshikmeda/KabaddiBackend/internal/models"
)

// CommentaryLine renders the human-readable log line for a scoring
// event. The wording is fixed; clients parse nothing, but viewers see
// these verbatim.
func CommentaryLine(pointType models.PointType, teamName, playerName string, points int) string {
	switch pointType {
	case models.PointTypeRaid:
		return fmt.Sprintf("%s scored raid points by player %s %d points.", teamName, playerName, points)
	case models.PointTypeTackle:
		return fmt.Sprintf("%s scored tackle points by player %s %d points.", teamName, playerName, points)
	case models.PointTypeBonus:
		return fmt.Sprintf("%s scored a bonus point. +%d points.", teamName, points)
	case models.PointTypeTechnical:
		return fmt.Sprintf("%s awarded a technical point. +%d points.", teamName, points)
	case models.PointTypeAllOut:
		return fmt.Sprintf("%s scored an all-out point! +%d points.", teamName, points)
	default:
		return "Point scored."
	}
}
