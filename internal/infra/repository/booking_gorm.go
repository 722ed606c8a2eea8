package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *BookingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *BookingGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Professional / Service
// --------------------------------------------------

func (r *BookingGormRepository) GetProfessional(
	ctx context.Context,
	businessID uint,
	professionalID uint,
) (*models.Professional, error) {

	var prof models.Professional
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", professionalID, businessID).
		First(&prof).Error; err != nil {
		return nil, err
	}
	return &prof, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) CreateProfessional(
	ctx context.Context,
	prof *models.Professional,
) error {
	return r.db.WithContext(ctx).Create(prof).Error
}

func (r *BookingGormRepository) CreateService(
	ctx context.Context,
	svc *models.Service,
) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

// ResolveCustomer é idempotente por (business_id, phone). Dois writers
// concorrentes com o mesmo telefone são resolvidos pela unique constraint:
// quem perde o insert refaz o lookup.
func (r *BookingGormRepository) ResolveCustomer(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&customer).Error

	if err == nil {
		// last-write-wins em nome/e-mail
		if customer.Name != name || (email != "" && customer.Email != email) {
			customer.Name = name
			if email != "" {
				customer.Email = email
			}
			if err := r.db.WithContext(ctx).Save(&customer).Error; err != nil {
				return nil, err
			}
		}
		return &customer, nil
	}

	customer = models.Customer{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			var existing models.Customer
			if err := r.db.WithContext(ctx).
				Where("business_id = ? AND phone = ?", businessID, phone).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment (conflict / create)
// --------------------------------------------------

func (r *BookingGormRepository) FindOverlapping(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	// dentro da transação o range fica travado até o commit
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var conflicts []models.Appointment
	if err := q.
		Where(
			"professional_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			professionalID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointmentForBusiness(
	ctx context.Context,
	appointmentID uint,
	businessID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			professionalID, string(domain.StatusCancelled), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Quota counters
// --------------------------------------------------

func (r *BookingGormRepository) CountAppointmentsInPeriod(
	ctx context.Context,
	businessID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"business_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			businessID, string(domain.StatusCancelled), start, end,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BookingGormRepository) CountProfessionals(
	ctx context.Context,
	businessID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("business_id = ? AND active = true", businessID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BookingGormRepository) CountServices(
	ctx context.Context,
	businessID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("business_id = ? AND active = true", businessID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

// InTransaction roda fn em SERIALIZABLE. Perda de corrida (40001) e
// violação de exclusão (23P01) viram domain.ErrTxConflict para o use case
// decidir o retry; o resto sobe como veio.
func (r *BookingGormRepository) InTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx, inTx: true})
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if httperr.IsSerializationFailure(err) || httperr.IsExclusionConflict(err) {
			return domain.ErrTxConflict
		}
		return err
	}

	return nil
}
