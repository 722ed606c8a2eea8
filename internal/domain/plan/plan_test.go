package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsFor(t *testing.T) {
	free := LimitsFor("free")
	assert.Equal(t, 2, free.MaxProfessionals)
	require.NotNil(t, free.MaxAppointmentsPerMonth)
	assert.Equal(t, 20, *free.MaxAppointmentsPerMonth)

	// planos pagos não têm teto mensal — nil, não sentinela
	assert.Nil(t, LimitsFor("pro").MaxAppointmentsPerMonth)
	assert.Nil(t, LimitsFor("business").MaxAppointmentsPerMonth)

	// tier desconhecido cai no mais restritivo
	assert.Equal(t, free, LimitsFor("enterprise-2030"))
	assert.Equal(t, free, LimitsFor(""))
}

func TestNextTier(t *testing.T) {
	assert.Equal(t, TierPro, NextTier("free"))
	assert.Equal(t, TierBusiness, NextTier("pro"))
	assert.Equal(t, TierBusiness, NextTier("business"))
}

func TestCheck(t *testing.T) {
	t.Run("allowed sse current < limit", func(t *testing.T) {
		assert.NoError(t, Check("free", ResourceProfessional, 0))
		assert.NoError(t, Check("free", ResourceProfessional, 1))
		assert.Error(t, Check("free", ResourceProfessional, 2))
		assert.Error(t, Check("free", ResourceProfessional, 3))
	})

	t.Run("teto mensal do free", func(t *testing.T) {
		assert.NoError(t, Check("free", ResourceAppointment, 19))

		err := Check("free", ResourceAppointment, 20)
		require.Error(t, err)

		var limitErr *LimitError
		require.ErrorAs(t, err, &limitErr)
		assert.Equal(t, ResourceAppointment, limitErr.Resource)
		assert.Equal(t, int64(20), limitErr.Current)
		assert.Equal(t, 20, limitErr.Limit)
		assert.Equal(t, TierPro, limitErr.SuggestedTier)
	})

	t.Run("mensal ilimitado nunca recusa", func(t *testing.T) {
		assert.NoError(t, Check("pro", ResourceAppointment, 1_000_000))
	})
}
