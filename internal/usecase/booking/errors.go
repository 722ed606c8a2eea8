package booking

import "fmt"

// LeadTimeError carrega a antecedência exigida para o chamador se corrigir.
type LeadTimeError struct {
	RequiredHours int
}

func (e *LeadTimeError) Error() string {
	return fmt.Sprintf("lead time violation: requires %dh in advance", e.RequiredHours)
}
