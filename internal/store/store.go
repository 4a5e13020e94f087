package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/order"
)

// Store defines the interface for all database operations.
type Store interface {
	// Accounts
	AdminByEmail(ctx context.Context, email string) (*model.Admin, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id string) (*model.User, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
	CreateUser(ctx context.Context, user *model.User) error

	// Engineers
	CreateEngineer(ctx context.Context, engineer *model.Engineer) error
	Engineers(ctx context.Context) ([]model.EngineerWithCount, error)
	EngineerByID(ctx context.Context, id string) (*model.Engineer, error)
	EngineerWithOrders(ctx context.Context, id string) (*model.Engineer, error)
	UpdateEngineer(ctx context.Context, id, name, field, phone string) (*model.Engineer, error)
	SoftDeleteEngineer(ctx context.Context, id string) (*model.Engineer, error)

	// Orders
	CreateOrder(ctx context.Context, o *model.Order) error
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	OrderForUser(ctx context.Context, userID, id string) (*model.Order, error)
	OrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	TransitionOrder(ctx context.Context, id string, from, to order.Status, engineerID *string) (*model.Order, error)

	// Dashboard counters
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status order.Status) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
	PendingOrders(ctx context.Context) ([]model.Order, error)
	CompletedCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) AdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) CreateEngineer(ctx context.Context, engineer *model.Engineer) error {
	return s.db.WithContext(ctx).Create(engineer).Error
}

// Engineers lists all active engineers ordered by name, each with the
// number of orders ever assigned to them.
func (s *gormStore) Engineers(ctx context.Context) ([]model.EngineerWithCount, error) {
	var rows []model.EngineerWithCount
	err := s.db.WithContext(ctx).
		Model(&model.Engineer{}).
		Select("engineers.*, COUNT(orders.id) AS order_count").
		Joins("LEFT JOIN orders ON orders.engineer_id = engineers.id").
		Where("engineers.is_deleted = ?", false).
		Group("engineers.id").
		Order("engineers.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list engineers: %w", err)
	}
	return rows, nil
}

func (s *gormStore) EngineerByID(ctx context.Context, id string) (*model.Engineer, error) {
	var engineer model.Engineer
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&engineer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &engineer, nil
}

func (s *gormStore) EngineerWithOrders(ctx context.Context, id string) (*model.Engineer, error) {
	var engineer model.Engineer
	err := s.db.WithContext(ctx).
		Preload("Orders").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&engineer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &engineer, nil
}

func (s *gormStore) UpdateEngineer(ctx context.Context, id, name, field, phone string) (*model.Engineer, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Engineer{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"name": name, "field": field, "phone": phone})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.EngineerByID(ctx, id)
}

// SoftDeleteEngineer marks the engineer deleted. Orders keep their
// reference; the engineer merely disappears from listings.
func (s *gormStore) SoftDeleteEngineer(ctx context.Context, id string) (*model.Engineer, error) {
	engineer, err := s.EngineerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Model(engineer).
		Update("is_deleted", true).Error
	if err != nil {
		return nil, err
	}
	return engineer, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
