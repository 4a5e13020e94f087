package store

import (
	"context"
	"fmt"
	"time"

	"repair-orders-backend/internal/model"
	"repair-orders-backend/internal/order"
)

func (s *gormStore) CreateOrder(ctx context.Context, o *model.Order) error {
	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	// Reload with relations so the caller gets the resolved user.
	return s.db.WithContext(ctx).
		Preload("User").
		First(o, "id = ?", o.ID).Error
}

func (s *gormStore) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Engineer").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *gormStore) OrderForUser(ctx context.Context, userID, id string) (*model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).
		Preload("Engineer").
		Where("id = ? AND user_id = ?", id, userID).
		First(&o).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (s *gormStore) OrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Engineer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionOrder persists a validated status change. The update is
// conditional on the status the caller validated against, so a concurrent
// transition that already moved the order makes this one fail with
// ErrOrderConflict instead of silently overwriting it. Status and engineer
// assignment land in the same single-row update.
func (s *gormStore) TransitionOrder(ctx context.Context, id string, from, to order.Status, engineerID *string) (*model.Order, error) {
	values := map[string]any{"status": string(to)}
	if engineerID != nil {
		values["engineer_id"] = *engineerID
	}

	res := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(values)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the order vanished or another writer changed its status
		// after the caller read it.
		if _, err := s.OrderByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrOrderConflict
	}

	return s.OrderByID(ctx, id)
}

func (s *gormStore) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Order{}).Count(&n).Error
	return n, err
}

func (s *gormStore) CountOrdersByStatus(ctx context.Context, status order.Status) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ?", string(status)).
		Count(&n).Error
	return n, err
}

func (s *gormStore) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}

// CountCompletedSince counts completed orders created at or after the
// given instant. The caller picks the window (calendar month or rolling
// week).
func (s *gormStore) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ? AND created_at >= ?", string(order.StatusCompleted), since).
		Count(&n).Error
	return n, err
}

// PendingOrders returns every order still waiting for review, with the
// requesting user resolved.
func (s *gormStore) PendingOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", string(order.StatusRequested)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CompletedCreatedSince returns the creation timestamps of completed
// orders in the chart window. Bucketing happens in the report package.
func (s *gormStore) CompletedCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("status = ? AND created_at >= ?", string(order.StatusCompleted), since).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}
