package voters

import (
	"fmt"

	"github.com/rankchoice/vote/internal/models"
)

// ValidateSelections checks that the ranks of selections form a permutation
// of 1..N, N being len(selections). It returns one message per offending
// entry in input order; an empty result means the list is valid. Option
// names are not checked against the poll and may repeat.
func ValidateSelections(selections []models.VoterSelection) []string {
	var problems []string
	n := len(selections)
	taken := make([]bool, n)
	for _, sel := range selections {
		switch {
		case sel.Rank < 1 || sel.Rank > n:
			problems = append(problems, fmt.Sprintf("Option '%s' rank outside range.", sel.OptionName))
		case taken[sel.Rank-1]:
			problems = append(problems, fmt.Sprintf("Option '%s' repeated rank.", sel.OptionName))
		default:
			taken[sel.Rank-1] = true
		}
	}
	return problems
}
