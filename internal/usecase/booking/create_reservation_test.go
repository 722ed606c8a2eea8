package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/plan"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/limits"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newCreateUC(repo *fakeRepo) *CreateReservation {
	uc := NewCreateReservation(repo, limits.New(), nopAuditor{})
	uc.now = clock(2026, 9, 1, 10, 0)
	return uc
}

func reservation(timeHM string) domain.ReservationInput {
	return domain.ReservationInput{
		BusinessID:     1,
		ProfessionalID: 2,
		ServiceID:      3,
		CustomerName:   "Mariana Souza",
		CustomerPhone:  "(11) 98888-7777",
		Date:           "2026-09-10",
		Time:           timeHM,
	}
}

func TestCreateReservation_Success(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), reservation("08:00"))
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.NotEmpty(t, ap.Reference)
	assert.Equal(t, time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC), ap.StartTime.UTC())
	assert.Equal(t, time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC), ap.EndTime.UTC())
	assert.NotZero(t, ap.CustomerID)
}

func TestCreateReservation_BookedSlotDisappearsFromGrid(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), reservation("09:00"))
	require.NoError(t, err)

	slotsUC := NewGetSlots(repo)
	slotsUC.now = clock(2026, 9, 1, 10, 0)

	slots, err := slotsUC.Execute(context.Background(), domain.SlotsInput{
		BusinessID:     1,
		ProfessionalID: 2,
		ServiceID:      3,
		Date:           day(2026, 9, 10),
	})
	require.NoError(t, err)

	for _, s := range slots {
		if s.Time == "09:00" {
			assert.False(t, s.Available)
		}
	}
}

func TestCreateReservation_InvalidInput(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	in := reservation("08:00")
	in.CustomerPhone = "123"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	in = reservation("08:00")
	in.CustomerName = ""
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	in = reservation("08:00")
	in.CustomerEmail = "not-an-email"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	in = reservation("25:99")
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateReservation_UnknownEntities(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	in := reservation("08:00")
	in.ServiceID = 999
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	in = reservation("08:00")
	in.ProfessionalID = 999
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))

	in = reservation("08:00")
	in.BusinessID = 999
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "business_not_found"))
}

func TestCreateReservation_LeadTimeViolation(t *testing.T) {
	repo, biz, _, _ := scenario()
	biz.MinAdvanceHours = 2

	uc := newCreateUC(repo)
	// mesmo dia, 10:00 → 11:00 viola, 12:00 passa
	uc.now = clock(2026, 9, 10, 10, 0)

	_, err := uc.Execute(context.Background(), reservation("11:00"))
	require.Error(t, err)

	var leadErr *LeadTimeError
	require.True(t, errors.As(err, &leadErr))
	assert.Equal(t, 2, leadErr.RequiredHours)

	_, err = uc.Execute(context.Background(), reservation("12:00"))
	assert.NoError(t, err)
}

func TestCreateReservation_OutsideBusinessHours(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), reservation("07:00"))
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))

	// 17:45 + 30min termina depois do fechamento
	_, err = uc.Execute(context.Background(), reservation("17:45"))
	assert.True(t, httperr.IsBusiness(err, "outside_business_hours"))
}

func TestCreateReservation_SlotConflict(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), reservation("09:00"))
	require.NoError(t, err)

	// mesmo horário exato
	in := reservation("09:00")
	in.CustomerPhone = "(11) 97777-6666"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// sobreposição parcial também recusa
	in = reservation("09:15")
	in.CustomerPhone = "(11) 97777-6666"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))

	// encostar não é sobrepor
	in = reservation("09:30")
	in.CustomerPhone = "(11) 97777-6666"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateReservation_RetryOnceThenConflict(t *testing.T) {
	repo, _, _, _ := scenario()

	// uma perda de corrida → a retentativa única resolve
	repo.txConflicts = 1
	uc := newCreateUC(repo)
	_, err := uc.Execute(context.Background(), reservation("08:00"))
	assert.NoError(t, err)

	// duas perdas seguidas → desiste com slot_conflict
	repo.txConflicts = 2
	_, err = uc.Execute(context.Background(), reservation("10:00"))
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"))
}

func TestCreateReservation_MonthlyQuota(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	// esgota o teto free: 20 agendamentos vivos no mês corrente
	for i := 0; i < 20; i++ {
		start := time.Date(2026, 9, 9, 8, 0, 0, 0, time.UTC).
			Add(time.Duration(i) * domain.SlotGranularity)
		repo.appointments = append(repo.appointments, &models.Appointment{
			ID:             100 + uint(i),
			BusinessID:     1,
			ProfessionalID: 2,
			ServiceID:      3,
			StartTime:      start,
			EndTime:        start.Add(30 * time.Minute),
			Status:         string(domain.StatusConfirmed),
		})
	}

	_, err := uc.Execute(context.Background(), reservation("08:00"))
	require.Error(t, err)

	var limitErr *plan.LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, plan.ResourceAppointment, limitErr.Resource)
	assert.Equal(t, int64(20), limitErr.Current)
	assert.Equal(t, 20, limitErr.Limit)
	assert.Equal(t, plan.TierPro, limitErr.SuggestedTier)

	// cancelar um libera exatamente uma vaga
	repo.appointments[0].Status = string(domain.StatusCancelled)

	_, err = uc.Execute(context.Background(), reservation("08:00"))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), reservation("10:00"))
	require.Error(t, err)
	require.True(t, errors.As(err, &limitErr))
}

func TestCreateReservation_QuotaIgnoredOnUnlimitedPlan(t *testing.T) {
	repo, biz, _, _ := scenario()
	biz.PlanTier = "pro"
	uc := newCreateUC(repo)

	for i := 0; i < 20; i++ {
		start := time.Date(2026, 9, 9, 8, 0, 0, 0, time.UTC).
			Add(time.Duration(i) * domain.SlotGranularity)
		repo.appointments = append(repo.appointments, &models.Appointment{
			ID:             100 + uint(i),
			BusinessID:     1,
			ProfessionalID: 2,
			ServiceID:      3,
			StartTime:      start,
			EndTime:        start.Add(30 * time.Minute),
			Status:         string(domain.StatusConfirmed),
		})
	}

	_, err := uc.Execute(context.Background(), reservation("08:00"))
	assert.NoError(t, err)
}

func TestCreateReservation_CustomerIdempotentByPhone(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	first, err := uc.Execute(context.Background(), reservation("08:00"))
	require.NoError(t, err)

	// mesmo fone com máscara diferente → mesmo cliente
	in := reservation("10:00")
	in.CustomerPhone = "11988887777"
	in.CustomerName = "Mariana S. Atualizada"
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	require.Len(t, repo.customers, 1)
	assert.Equal(t, "Mariana S. Atualizada", repo.customers[0].Name)
}

func TestCreateReservation_ConcurrentSameSlot(t *testing.T) {
	repo, _, _, _ := scenario()
	uc := newCreateUC(repo)

	const callers = 8

	var wg sync.WaitGroup
	results := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := reservation("14:00")
			_, results[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	won, lost := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			won++
		case httperr.IsBusiness(err, "slot_conflict"):
			lost++
		default:
			t.Fatalf("erro inesperado: %v", err)
		}
	}

	// exatamente um vence; nenhuma sobreposição jamais persiste
	assert.Equal(t, 1, won)
	assert.Equal(t, callers-1, lost)

	live := 0
	for _, ap := range repo.appointments {
		if domain.Status(ap.Status).Occupies() {
			live++
		}
	}
	assert.Equal(t, 1, live)
}
