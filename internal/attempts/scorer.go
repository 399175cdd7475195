package attempts

import (
	"github.com/incharge-incontrol/backend/internal/models"
)

// Score tallies the response types and classifies the attempt.
//
// The net score (inCharge - inControl) is compared against three reference
// points: top = n (all In-Charge), mid = 0 (perfectly balanced) and
// bottom = -n (all In-Control), where n is the number of responses. The
// label of the nearest reference point wins; ties resolve mid > top > bottom,
// so anything equidistant leans Balanced. Pure and deterministic.
func Score(responses []models.Response) (models.Score, models.AttemptResult) {
	var score models.Score
	for _, resp := range responses {
		switch resp.AnswerType {
		case models.OptionInCharge:
			score.InCharge++
		case models.OptionInControl:
			score.InControl++
		}
	}

	total := len(responses)
	netScore := score.InCharge - score.InControl

	distTop := abs(total - netScore)
	distMid := abs(netScore)
	distBot := abs(-total - netScore)

	minDist := distTop
	if distMid < minDist {
		minDist = distMid
	}
	if distBot < minDist {
		minDist = distBot
	}

	result := models.ResultBalanced
	switch {
	case minDist == distMid:
		result = models.ResultBalanced
	case minDist == distTop:
		result = models.ResultInCharge
	case minDist == distBot:
		result = models.ResultInControl
	}
	return score, result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
