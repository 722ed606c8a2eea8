package plan

import "fmt"

// ===============================
// Plan Tiers
// ===============================

type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

type Resource string

const (
	ResourceProfessional Resource = "professional"
	ResourceService      Resource = "service"
	ResourceAppointment  Resource = "appointment"
)

// Limits define os tetos de um plano.
// MaxAppointmentsPerMonth == nil significa ilimitado — sem sentinela mágica.
type Limits struct {
	MaxProfessionals        int
	MaxServices             int
	MaxAppointmentsPerMonth *int
}

func intPtr(v int) *int { return &v }

var tiers = map[Tier]Limits{
	TierFree: {
		MaxProfessionals:        2,
		MaxServices:             5,
		MaxAppointmentsPerMonth: intPtr(20),
	},
	TierPro: {
		MaxProfessionals:        10,
		MaxServices:             50,
		MaxAppointmentsPerMonth: nil,
	},
	TierBusiness: {
		MaxProfessionals:        100,
		MaxServices:             500,
		MaxAppointmentsPerMonth: nil,
	},
}

// LimitsFor devolve os tetos do plano; tier desconhecido cai no free,
// o mais restritivo.
func LimitsFor(tier string) Limits {
	if l, ok := tiers[Tier(tier)]; ok {
		return l
	}
	return tiers[TierFree]
}

// NextTier sugere o upgrade imediato; o último plano sugere a si mesmo.
func NextTier(tier string) Tier {
	switch Tier(tier) {
	case TierFree:
		return TierPro
	case TierPro:
		return TierBusiness
	default:
		return TierBusiness
	}
}

// ===============================
// LimitError
// ===============================

// LimitError carrega o payload exigido na recusa plan_limit_reached:
// uso atual, teto e sugestão de upgrade.
type LimitError struct {
	Resource      Resource
	Current       int64
	Limit         int
	SuggestedTier Tier
}

func (e *LimitError) Error() string {
	return fmt.Sprintf(
		"plan limit reached: %s %d/%d",
		e.Resource, e.Current, e.Limit,
	)
}

// Check aplica a regra allowed ⇔ current < limit para recursos finitos.
// Recurso mensal ilimitado (nil) nunca recusa.
func Check(tier string, resource Resource, current int64) error {
	limits := LimitsFor(tier)

	var ceiling *int
	switch resource {
	case ResourceProfessional:
		ceiling = intPtr(limits.MaxProfessionals)
	case ResourceService:
		ceiling = intPtr(limits.MaxServices)
	case ResourceAppointment:
		ceiling = limits.MaxAppointmentsPerMonth
	}

	if ceiling == nil {
		return nil
	}

	if current < int64(*ceiling) {
		return nil
	}

	return &LimitError{
		Resource:      resource,
		Current:       current,
		Limit:         *ceiling,
		SuggestedTier: NextTier(tier),
	}
}
