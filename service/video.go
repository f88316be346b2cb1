package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"streaming-service/constant"
	"streaming-service/dto"
	"streaming-service/entities"
	"streaming-service/pkg/crypto"
	"streaming-service/pkg/rabbitmq"
	"streaming-service/repository"
	"streaming-service/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UploadInput struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
	Title       string
	Description string
}

// StreamInfo carries the headers the passthrough endpoint needs alongside the
// raw body.
type StreamInfo struct {
	MimeType string
	Title    string
	Size     int64
}

type VideoService interface {
	Upload(ctx context.Context, in UploadInput) (*dto.VideoSummary, error)
	List(ctx context.Context) ([]dto.VideoSummary, error)
	Info(ctx context.Context, id uuid.UUID) (*dto.VideoInfo, error)
	Chunk(ctx context.Context, id uuid.UUID, chunkIndex int) (*dto.ChunkResponse, error)
	ContentType(ctx context.Context, id uuid.UUID) (string, error)
	Stream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *StreamInfo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo      repository.VideoRepository
	store     storage.ObjectStore
	events    rabbitmq.Publisher
	chunkSize int64
	clock     func() time.Time
	idGen     func() uuid.UUID
}

// NewService wires the ingestion, retrieval and passthrough flows. events may
// be nil when no broker is configured; lifecycle events are then skipped.
func NewService(repo repository.VideoRepository, store storage.ObjectStore, events rabbitmq.Publisher, chunkSize int64) VideoService {
	if chunkSize <= 0 {
		chunkSize = constant.DefaultChunkSizeBytes
	}
	return &service{
		repo:      repo,
		store:     store,
		events:    events,
		chunkSize: chunkSize,
		clock:     time.Now,
		idGen:     uuid.New,
	}
}

// Upload stores the raw stream first and writes metadata only after the blob
// write succeeded. If the metadata write fails the orphaned blob is accepted
// garbage; no partial record is ever created.
func (s *service) Upload(ctx context.Context, in UploadInput) (*dto.VideoSummary, error) {
	if in.Reader == nil || in.Size <= 0 {
		return nil, fmt.Errorf("upload of %q with size %d: %w", in.Filename, in.Size, entities.ErrUnreadableUpload)
	}

	storageKey := "videos/" + s.idGen().String() + filepath.Ext(in.Filename)
	format := constant.FormatFromMimeType(in.ContentType)
	mimeType := in.ContentType
	if mimeType == "" {
		mimeType = format.MimeType()
	}

	if err := s.store.Put(ctx, storageKey, in.Reader, in.Size, mimeType); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("key", storageKey).Msg("failed to store upload")
		return nil, err
	}

	status := constant.VideoStatusReady
	stored, err := s.store.Stat(ctx, storageKey)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("key", storageKey).Msg("failed to verify stored upload")
		return nil, err
	}
	if stored != in.Size {
		zerolog.Ctx(ctx).Warn().
			Str("key", storageKey).
			Int64("declared", in.Size).
			Int64("stored", stored).
			Msg("stored size mismatch, marking record as error")
		status = constant.VideoStatusError
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	now := s.clock()
	video := &entities.Video{
		ID:            s.idGen(),
		Title:         in.Title,
		Description:   in.Description,
		StorageKey:    storageKey,
		FileSize:      in.Size,
		Format:        format,
		Status:        status,
		MimeType:      mimeType,
		EncryptionKey: base64.StdEncoding.EncodeToString(key),
		TotalChunks:   entities.TotalChunksFor(in.Size, s.chunkSize),
		ChunkSize:     s.chunkSize,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, video); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("key", storageKey).Msg("failed to persist video metadata")
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("video_id", video.ID.String()).
		Str("title", video.Title).
		Int("total_chunks", video.TotalChunks).
		Str("status", video.Status.String()).
		Msg("video ingested")

	if s.events != nil && video.Status.IsAvailableForStreaming() {
		event := dto.VideoEventMessage{
			VideoID:    video.ID,
			StorageKey: video.StorageKey,
			Title:      video.Title,
			FileSize:   video.FileSize,
			OccurredAt: now,
		}
		if err := s.events.PublishVideoUploaded(ctx, event); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("video_id", video.ID.String()).Msg("failed to publish uploaded event")
		}
	}

	summary := dto.NewVideoSummary(video)
	return &summary, nil
}

func (s *service) List(ctx context.Context) ([]dto.VideoSummary, error) {
	videos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.VideoSummary, 0, len(videos))
	for _, v := range videos {
		summaries = append(summaries, dto.NewVideoSummary(v))
	}
	return summaries, nil
}

func (s *service) Info(ctx context.Context, id uuid.UUID) (*dto.VideoInfo, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := dto.NewVideoInfo(video)
	return &info, nil
}

// Chunk validates the index before touching storage, fetches the raw byte
// range and encrypts it under the video's key with a fresh IV. The IV is
// always returned with the ciphertext.
func (s *service) Chunk(ctx context.Context, id uuid.UUID, chunkIndex int) (*dto.ChunkResponse, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsAvailableForStreaming() {
		return nil, fmt.Errorf("video %s is not available for streaming: %w", id, entities.ErrNotFound)
	}

	offset, length, err := video.ChunkRange(chunkIndex)
	if err != nil {
		return nil, err
	}

	stream, err := s.store.GetRange(ctx, video.StorageKey, offset, length)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("video_id", id.String()).
			Int("chunk_index", chunkIndex).
			Msg("failed to fetch chunk range")
		return nil, err
	}
	defer stream.Close()

	plaintext, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read chunk %d of video %s: %v: %w", chunkIndex, id, err, entities.ErrStorageFailure)
	}
	if int64(len(plaintext)) != length {
		return nil, fmt.Errorf("chunk %d of video %s: read %d bytes, want %d: %w", chunkIndex, id, len(plaintext), length, entities.ErrStorageFailure)
	}

	key, err := base64.StdEncoding.DecodeString(video.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode key for video %s: %w", id, entities.ErrInvalidKeyMaterial)
	}

	ciphertext, iv, err := crypto.EncryptWithFreshIV(plaintext, key)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("video_id", id.String()).
			Int("chunk_index", chunkIndex).
			Msg("failed to encrypt chunk")
		return nil, err
	}

	return &dto.ChunkResponse{
		ChunkIndex:    chunkIndex,
		EncryptedData: ciphertext,
		IV:            iv,
		IsLastChunk:   video.IsLastChunk(chunkIndex),
	}, nil
}

func (s *service) ContentType(ctx context.Context, id uuid.UUID) (string, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return video.MimeType, nil
}

// Stream opens the whole object, unencrypted, for inline playback. This path
// bypasses chunk encryption on purpose; it exists for direct browser playback.
func (s *service) Stream(ctx context.Context, id uuid.UUID) (io.ReadCloser, *StreamInfo, error) {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !video.IsAvailableForStreaming() {
		return nil, nil, fmt.Errorf("video %s is not available for streaming: %w", id, entities.ErrNotFound)
	}

	stream, err := s.store.GetStream(ctx, video.StorageKey)
	if err != nil {
		return nil, nil, err
	}

	return stream, &StreamInfo{
		MimeType: video.MimeType,
		Title:    video.Title,
		Size:     video.FileSize,
	}, nil
}

// Delete removes the metadata record first, then the blob best-effort. A
// failed blob delete leaves garbage for the next delete call; it is not
// surfaced to the caller.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !video.Status.CanTransitionTo(constant.VideoStatusDeleted) {
		return fmt.Errorf("video %s in status %s: %w", id, video.Status, entities.ErrInvalidTransition)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, video.StorageKey); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("video_id", id.String()).
			Str("key", video.StorageKey).
			Msg("failed to delete blob, leaving orphan")
	}

	zerolog.Ctx(ctx).Info().Str("video_id", id.String()).Msg("video deleted")

	if s.events != nil {
		event := dto.VideoEventMessage{
			VideoID:    video.ID,
			StorageKey: video.StorageKey,
			Title:      video.Title,
			FileSize:   video.FileSize,
			OccurredAt: s.clock(),
		}
		if err := s.events.PublishVideoDeleted(ctx, event); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("video_id", id.String()).Msg("failed to publish deleted event")
		}
	}

	return nil
}
