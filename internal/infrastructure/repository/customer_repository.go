package repository

import (
	"context"
	"errors"

	"github.com/dquispe/pos-backoffice/internal/domain/entity"
	domainRepo "github.com/dquispe/pos-backoffice/internal/domain/repository"
	"github.com/dquispe/pos-backoffice/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})
	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR document_number ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).
		Where("active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *customerRepository) FirstActiveIdentificationType(ctx context.Context) (*entity.IdentificationType, error) {
	var t entity.IdentificationType
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *customerRepository) CreateIdentificationType(ctx context.Context, t *entity.IdentificationType) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *customerRepository) FirstActiveChannel(ctx context.Context) (*entity.SalesChannel, error) {
	var c entity.SalesChannel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *customerRepository) CreateChannel(ctx context.Context, c *entity.SalesChannel) error {
	return r.db.WithContext(ctx).Create(c).Error
}

type salespersonRepository struct {
	db *gorm.DB
}

// NewSalespersonRepository creates a new salesperson repository
func NewSalespersonRepository(db *gorm.DB) domainRepo.SalespersonRepository {
	return &salespersonRepository{db: db}
}

func (r *salespersonRepository) Create(ctx context.Context, sp *entity.Salesperson) error {
	return r.db.WithContext(ctx).Create(sp).Error
}

func (r *salespersonRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Salesperson, error) {
	var sp entity.Salesperson
	err := r.db.WithContext(ctx).First(&sp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sp, err
}

func (r *salespersonRepository) FirstActive(ctx context.Context) (*entity.Salesperson, error) {
	var sp entity.Salesperson
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sp, err
}
