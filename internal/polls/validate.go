package polls

import (
	"strings"

	"github.com/rankchoice/vote/internal/apperr"
	"github.com/rankchoice/vote/internal/models"
)

// Validate checks a fully built candidate poll before it is persisted.
// Every failing rule is reported in one validation error. The options list is
// not checked.
func Validate(p *models.Poll) error {
	var problems []string
	if !p.EndTime.After(p.StartTime) {
		problems = append(problems, "end time must be after start time")
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name must not be blank")
	}
	if strings.TrimSpace(p.Description) == "" {
		problems = append(problems, "description must not be blank")
	}
	if strings.TrimSpace(p.OwnerID) == "" {
		problems = append(problems, "owner must not be blank")
	}
	if len(problems) > 0 {
		return apperr.NewValidation(strings.Join(problems, "; "))
	}
	return nil
}
