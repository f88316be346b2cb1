package entities

import (
	"fmt"
	"time"

	"streaming-service/constant"

	"github.com/google/uuid"
)

type Video struct {
	ID              uuid.UUID            `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title           string               `json:"title" gorm:"type:varchar(255);not null"`
	Description     string               `json:"description" gorm:"type:text"`
	StorageKey      string               `json:"storage_key" gorm:"type:varchar(500);not null;uniqueIndex:unique_storage_key"`
	FileSize        int64                `json:"file_size" gorm:"type:bigint;not null"`
	DurationSeconds int                  `json:"duration_seconds" gorm:"type:integer;default:0"`
	Format          constant.VideoFormat `json:"format" gorm:"type:varchar(20);not null"`
	Status          constant.VideoStatus `json:"status" gorm:"type:varchar(20);not null;index:idx_videos_status"`
	MimeType        string               `json:"mime_type" gorm:"type:varchar(50);not null"`
	EncryptionKey   string               `json:"encryption_key" gorm:"type:varchar(500);not null"`
	TotalChunks     int                  `json:"total_chunks" gorm:"type:integer;not null"`
	ChunkSize       int64                `json:"chunk_size" gorm:"type:bigint;not null"`
	CreatedAt       time.Time            `json:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time            `json:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Video) TableName() string {
	return "videos"
}

// TotalChunksFor derives the chunk count for a file of the given size.
// A zero-byte file still occupies zero chunks; callers treat that as an
// unreadable upload before getting here.
func TotalChunksFor(fileSize, chunkSize int64) int {
	if chunkSize <= 0 || fileSize <= 0 {
		return 0
	}
	return int((fileSize + chunkSize - 1) / chunkSize)
}

// ChunkRange returns the byte range [offset, offset+length) covered by chunk
// index. Every chunk except possibly the last has exactly ChunkSize bytes.
func (v *Video) ChunkRange(index int) (offset, length int64, err error) {
	if index < 0 || index >= v.TotalChunks {
		return 0, 0, fmt.Errorf("chunk %d of video %s (total %d): %w", index, v.ID, v.TotalChunks, ErrInvalidChunkIndex)
	}
	offset = int64(index) * v.ChunkSize
	length = v.ChunkSize
	if remaining := v.FileSize - offset; remaining < length {
		length = remaining
	}
	return offset, length, nil
}

func (v *Video) IsLastChunk(index int) bool {
	return index == v.TotalChunks-1
}

func (v *Video) IsAvailableForStreaming() bool {
	return v.Status.IsAvailableForStreaming()
}

func (v *Video) FormattedDuration() string {
	hours := v.DurationSeconds / 3600
	minutes := (v.DurationSeconds % 3600) / 60
	seconds := v.DurationSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func (v *Video) FormattedFileSize() string {
	const (
		kb = int64(1024)
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case v.FileSize >= gb:
		return fmt.Sprintf("%.2f GB", float64(v.FileSize)/float64(gb))
	case v.FileSize >= mb:
		return fmt.Sprintf("%.2f MB", float64(v.FileSize)/float64(mb))
	case v.FileSize >= kb:
		return fmt.Sprintf("%.2f KB", float64(v.FileSize)/float64(kb))
	default:
		return fmt.Sprintf("%d B", v.FileSize)
	}
}
