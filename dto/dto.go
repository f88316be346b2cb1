package dto

import (
	"time"

	"streaming-service/constant"
	"streaming-service/entities"

	"github.com/google/uuid"
)

// VideoSummary is the listing/upload response shape. It never exposes the
// encryption key or the internal storage key.
type VideoSummary struct {
	ID                uuid.UUID            `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	FileSize          int64                `json:"fileSize"`
	FormattedFileSize string               `json:"formattedFileSize"`
	DurationSeconds   int                  `json:"durationSeconds"`
	FormattedDuration string               `json:"formattedDuration"`
	Format            constant.VideoFormat `json:"format"`
	Status            constant.VideoStatus `json:"status"`
	MimeType          string               `json:"mimeType"`
	TotalChunks       int                  `json:"totalChunks"`
	ChunkSize         int64                `json:"chunkSize"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

type VideoInfo struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	FormattedFileSize string    `json:"formattedFileSize"`
	FormattedDuration string    `json:"formattedDuration"`
	MimeType          string    `json:"mimeType"`
	TotalChunks       int       `json:"totalChunks"`
	IsReady           bool      `json:"isReady"`
}

// ChunkResponse carries one encrypted chunk. EncryptedData and IV marshal as
// base64 over JSON; the IV is required by the client to decrypt.
type ChunkResponse struct {
	ChunkIndex    int    `json:"chunkIndex"`
	EncryptedData []byte `json:"encryptedData"`
	IV            []byte `json:"iv"`
	IsLastChunk   bool   `json:"isLastChunk"`
}

// VideoEventMessage is published to the video events exchange on lifecycle
// changes (uploaded, deleted).
type VideoEventMessage struct {
	VideoID    uuid.UUID `json:"videoId"`
	StorageKey string    `json:"storageKey"`
	Title      string    `json:"title"`
	FileSize   int64     `json:"fileSize"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewVideoSummary(v *entities.Video) VideoSummary {
	return VideoSummary{
		ID:                v.ID,
		Title:             v.Title,
		Description:       v.Description,
		FileSize:          v.FileSize,
		FormattedFileSize: v.FormattedFileSize(),
		DurationSeconds:   v.DurationSeconds,
		FormattedDuration: v.FormattedDuration(),
		Format:            v.Format,
		Status:            v.Status,
		MimeType:          v.MimeType,
		TotalChunks:       v.TotalChunks,
		ChunkSize:         v.ChunkSize,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}

func NewVideoInfo(v *entities.Video) VideoInfo {
	return VideoInfo{
		ID:                v.ID,
		Title:             v.Title,
		Description:       v.Description,
		FormattedFileSize: v.FormattedFileSize(),
		FormattedDuration: v.FormattedDuration(),
		MimeType:          v.MimeType,
		TotalChunks:       v.TotalChunks,
		IsReady:           v.IsAvailableForStreaming(),
	}
}
