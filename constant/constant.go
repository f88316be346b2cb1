package constant

import "strings"

// DefaultChunkSizeBytes is the fixed partition size used when splitting a
// stored video into encrypted chunks. Overridable via config.
const DefaultChunkSizeBytes int64 = 1024 * 1024

type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "PENDING"
	VideoStatusProcessing VideoStatus = "PROCESSING"
	VideoStatusReady      VideoStatus = "READY"
	VideoStatusError      VideoStatus = "ERROR"
	VideoStatusDeleted    VideoStatus = "DELETED"
)

func (s VideoStatus) String() string {
	return string(s)
}

func (s VideoStatus) IsAvailableForStreaming() bool {
	return s == VideoStatusReady
}

func (s VideoStatus) CanBeModified() bool {
	return s == VideoStatusPending || s == VideoStatusError
}

func (s VideoStatus) IsFinalState() bool {
	return s == VideoStatusReady || s == VideoStatusError || s == VideoStatusDeleted
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition. DELETED is terminal.
func (s VideoStatus) CanTransitionTo(next VideoStatus) bool {
	switch s {
	case VideoStatusPending:
		return next == VideoStatusProcessing || next == VideoStatusReady ||
			next == VideoStatusError || next == VideoStatusDeleted
	case VideoStatusProcessing:
		return next == VideoStatusReady || next == VideoStatusError
	case VideoStatusReady, VideoStatusError:
		return next == VideoStatusDeleted
	default:
		return false
	}
}

type VideoFormat string

const (
	VideoFormatMP4  VideoFormat = "MP4"
	VideoFormatWEBM VideoFormat = "WEBM"
	VideoFormatMOV  VideoFormat = "MOV"
	VideoFormatAVI  VideoFormat = "AVI"
)

func (f VideoFormat) String() string {
	return string(f)
}

func (f VideoFormat) Extension() string {
	switch f {
	case VideoFormatWEBM:
		return "webm"
	case VideoFormatMOV:
		return "mov"
	case VideoFormatAVI:
		return "avi"
	default:
		return "mp4"
	}
}

func (f VideoFormat) MimeType() string {
	switch f {
	case VideoFormatWEBM:
		return "video/webm"
	case VideoFormatMOV:
		return "video/quicktime"
	case VideoFormatAVI:
		return "video/x-msvideo"
	default:
		return "video/mp4"
	}
}

var mimeToFormat = map[string]VideoFormat{
	"video/mp4":       VideoFormatMP4,
	"video/webm":      VideoFormatWEBM,
	"video/quicktime": VideoFormatMOV,
	"video/x-msvideo": VideoFormatAVI,
	"video/avi":       VideoFormatAVI,
}

// FormatFromMimeType maps a declared content type to its format using a closed
// mapping. Media type parameters after ";" are ignored. Unknown or empty types
// fall back to MP4.
func FormatFromMimeType(mimeType string) VideoFormat {
	base := mimeType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(strings.TrimSpace(base))
	if f, ok := mimeToFormat[base]; ok {
		return f
	}
	return VideoFormatMP4
}

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
