package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jwhittle/daybook/internal/contract"
	"github.com/jwhittle/daybook/internal/domain"
)

// parseDateFlag parses a YYYY-MM-DD flag value, defaulting to today's date
// when empty.
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return domain.DateOf(time.Now()), nil
	}
	parsed, err := time.Parse(contract.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

func parsePriorityFlag(value string, fallback domain.PriorityLevel) (domain.PriorityLevel, error) {
	if value == "" {
		return fallback, nil
	}
	p := domain.PriorityLevel(value)
	switch p {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent:
		return p, nil
	}
	return "", fmt.Errorf("invalid priority %q, expected low|medium|high|urgent", value)
}

func parseEnergyFlag(value string, fallback domain.EnergyLevel) (domain.EnergyLevel, error) {
	if value == "" {
		return fallback, nil
	}
	e := domain.EnergyLevel(value)
	switch e {
	case domain.EnergyLow, domain.EnergyHigh:
		return e, nil
	}
	return "", fmt.Errorf("invalid energy %q, expected low|high", value)
}

// printJSON emits a value as indented JSON for non-interactive consumers.
func printJSON(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}
