package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errNotFound = errors.New("not found")

// fakeRepo implementa domain.Repository em memória. InTransaction
// serializa a seção atômica com um mutex, espelhando o papel da
// transação SERIALIZABLE do Postgres; txConflicts injeta perdas de
// corrida para exercitar o retry único.
type fakeRepo struct {
	mu sync.Mutex

	businesses    map[uint]*models.Business
	professionals map[uint]*models.Professional
	services      map[uint]*models.Service

	customers    []*models.Customer
	appointments []*models.Appointment

	nextID      uint
	txConflicts int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		businesses:    map[uint]*models.Business{},
		professionals: map[uint]*models.Professional{},
		services:      map[uint]*models.Service{},
		nextID:        1,
	}
}

func (f *fakeRepo) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

// -------- Business --------

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	for _, b := range f.businesses {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, errNotFound
}

// -------- Professional / Service --------

func (f *fakeRepo) GetProfessional(_ context.Context, businessID, professionalID uint) (*models.Professional, error) {
	if p, ok := f.professionals[professionalID]; ok && p.BusinessID == businessID {
		return p, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	if s, ok := f.services[serviceID]; ok && s.BusinessID == businessID {
		return s, nil
	}
	return nil, errNotFound
}

func (f *fakeRepo) CreateProfessional(_ context.Context, prof *models.Professional) error {
	prof.ID = f.id()
	f.professionals[prof.ID] = prof
	return nil
}

func (f *fakeRepo) CreateService(_ context.Context, svc *models.Service) error {
	svc.ID = f.id()
	f.services[svc.ID] = svc
	return nil
}

// -------- Customer --------

func (f *fakeRepo) ResolveCustomer(_ context.Context, businessID uint, name, phone, email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.BusinessID == businessID && c.Phone == phone {
			c.Name = name
			if email != "" {
				c.Email = email
			}
			return c, nil
		}
	}

	c := &models.Customer{
		ID:         f.id(),
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}
	f.customers = append(f.customers, c)
	return c, nil
}

// -------- Appointment --------

func (f *fakeRepo) FindOverlapping(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	candidate := domain.Interval{Start: start, End: end}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if candidate.Overlaps(domain.IntervalOf(ap)) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = f.id()
	cp := *ap
	f.appointments = append(f.appointments, &cp)
	return nil
}

func (f *fakeRepo) GetAppointmentForBusiness(_ context.Context, appointmentID, businessID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BusinessID == businessID {
			return ap, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i, cur := range f.appointments {
		if cur.ID == ap.ID {
			cp := *ap
			f.appointments[i] = &cp
			return nil
		}
	}
	return errNotFound
}

func (f *fakeRepo) ListAppointmentsForDay(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.ProfessionalID != professionalID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

// -------- Quota counters --------

func (f *fakeRepo) CountAppointmentsInPeriod(_ context.Context, businessID uint, start, end time.Time) (int64, error) {
	var count int64
	for _, ap := range f.appointments {
		if ap.BusinessID != businessID {
			continue
		}
		if !domain.Status(ap.Status).Occupies() {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CountProfessionals(_ context.Context, businessID uint) (int64, error) {
	var count int64
	for _, p := range f.professionals {
		if p.BusinessID == businessID && p.Active {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CountServices(_ context.Context, businessID uint) (int64, error) {
	var count int64
	for _, s := range f.services {
		if s.BusinessID == businessID && s.Active {
			count++
		}
	}
	return count, nil
}

// -------- Transaction --------

func (f *fakeRepo) InTransaction(_ context.Context, fn func(domain.Repository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.txConflicts > 0 {
		f.txConflicts--
		return domain.ErrTxConflict
	}

	return fn(f)
}

// -------- Helpers de cenário --------

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}
