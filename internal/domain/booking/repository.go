package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrTxConflict sinaliza que a transação serializável perdeu a corrida
// (serialization failure / violação de exclusão). O use case tenta
// exatamente mais uma vez antes de devolver slot_conflict.
var ErrTxConflict = errors.New("transaction conflict")

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Professional / Service --------
	GetProfessional(
		ctx context.Context,
		businessID uint,
		professionalID uint,
	) (*models.Professional, error)

	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// criação gated por cota — sempre dentro de InTransaction
	CreateProfessional(
		ctx context.Context,
		prof *models.Professional,
	) error

	CreateService(
		ctx context.Context,
		svc *models.Service,
	) error

	// -------- Customer (get or create, idempotente por phone) --------
	ResolveCustomer(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Appointment (conflict / create) --------
	// FindOverlapping devolve os agendamentos não cancelados do
	// profissional que cruzam [start, end), com lock de escrita
	// quando chamado dentro de InTransaction.
	FindOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBusiness(
		ctx context.Context,
		appointmentID uint,
		businessID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForDay(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Quota counters --------
	CountAppointmentsInPeriod(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	CountProfessionals(
		ctx context.Context,
		businessID uint,
	) (int64, error)

	CountServices(
		ctx context.Context,
		businessID uint,
	) (int64, error)

	// -------- Atomicidade --------
	// InTransaction executa fn numa transação SERIALIZABLE; o Repository
	// recebido por fn opera dentro dela. Conflitos de serialização são
	// devolvidos como ErrTxConflict.
	InTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
