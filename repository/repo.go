package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"streaming-service/entities"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// VideoRepository is the metadata persistence collaborator. Ingestion only
// creates records and deletion only removes them; there is no partial-field
// update.
type VideoRepository interface {
	Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error
	Create(ctx context.Context, video *entities.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error)
	FindAll(ctx context.Context) ([]*entities.Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repo struct {
	db *gorm.DB
}

func NewRepo(db *sql.DB) VideoRepository {
	gormDB, _ := gorm.Open(postgres.New(postgres.Config{
		Conn: db}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		},
	)
	return &repo{
		db: gormDB,
	}
}

func (r *repo) Create(ctx context.Context, video *entities.Video) error {
	err := r.db.WithContext(ctx).Create(video).Error
	if err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	video := &entities.Video{}
	err := r.db.WithContext(ctx).First(video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video %s: %w", id, entities.ErrNotFound)
		}
		return nil, err
	}
	return video, nil
}

func (r *repo) FindAll(ctx context.Context) ([]*entities.Video, error) {
	var videos []*entities.Video
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entities.Video{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("video %s: %w", id, entities.ErrNotFound)
	}
	return nil
}

func (r *repo) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return callback(ctx)
	}, opts...)
}
