package service

import (
	"context"
	"database/sql"
	"io"

	"streaming-service/dto"
	"streaming-service/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) Transaction(ctx context.Context, callback func(ctx context.Context) error, opts ...*sql.TxOptions) error {
	return callback(ctx)
}

func (m *RepoMock) Create(ctx context.Context, video *entities.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *RepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entities.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entities.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepoMock) FindAll(ctx context.Context) ([]*entities.Video, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*entities.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *StoreMock) GetRange(ctx context.Context, key string, offset, length int64) (io.ReadCloser, error) {
	args := m.Called(ctx, key, offset, length)
	if v := args.Get(0); v != nil {
		return v.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) GetStream(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if v := args.Get(0); v != nil {
		return v.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StoreMock) Stat(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StoreMock) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) PublishVideoUploaded(ctx context.Context, msg dto.VideoEventMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *PublisherMock) PublishVideoDeleted(ctx context.Context, msg dto.VideoEventMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
