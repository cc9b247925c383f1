package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
)

// EventFilter enumerates the supported list filters.
type EventFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

type EventRepository interface {
	Insert(ctx context.Context, event *dbm.Event) error
	FindBySlug(ctx context.Context, slug string) (*dbm.Event, error)
	List(ctx context.Context, filter EventFilter) ([]dbm.Event, int64, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Insert(ctx context.Context, event *dbm.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*dbm.Event, error) {
	var event dbm.Event
	err := r.db.WithContext(ctx).
		Preload("Tickets").
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]dbm.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&dbm.Event{})
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []dbm.Event
	err := query.
		Order("start_date ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&events).Error
	return events, total, err
}
