package entities

import (
	"testing"

	"streaming-service/constant"

	"github.com/stretchr/testify/require"
)

func TestTotalChunksFor(t *testing.T) {
	cases := []struct {
		name      string
		fileSize  int64
		chunkSize int64
		want      int
	}{
		{name: "exact multiple", fileSize: 4 * 1024, chunkSize: 1024, want: 4},
		{name: "with remainder", fileSize: 4*1024 + 1, chunkSize: 1024, want: 5},
		{name: "smaller than one chunk", fileSize: 10, chunkSize: 1024, want: 1},
		{name: "single byte", fileSize: 1, chunkSize: 1024, want: 1},
		{name: "empty file", fileSize: 0, chunkSize: 1024, want: 0},
		{name: "2.5MB at 1MiB chunks", fileSize: 2_500_000, chunkSize: 1_048_576, want: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TotalChunksFor(tc.fileSize, tc.chunkSize))
		})
	}
}

func TestVideo_ChunkRange(t *testing.T) {
	v := &Video{
		FileSize:    2_500_000,
		ChunkSize:   1_048_576,
		TotalChunks: 3,
	}

	offset, length, err := v.ChunkRange(0)
	require.NoError(t, err)
	require.Equal(t, int64(0), offset)
	require.Equal(t, int64(1_048_576), length)
	require.False(t, v.IsLastChunk(0))

	offset, length, err = v.ChunkRange(1)
	require.NoError(t, err)
	require.Equal(t, int64(1_048_576), offset)
	require.Equal(t, int64(1_048_576), length)
	require.False(t, v.IsLastChunk(1))

	offset, length, err = v.ChunkRange(2)
	require.NoError(t, err)
	require.Equal(t, int64(2_097_152), offset)
	require.Equal(t, int64(402_848), length)
	require.True(t, v.IsLastChunk(2))
}

func TestVideo_ChunkRange_OutOfBounds(t *testing.T) {
	v := &Video{
		FileSize:    2_500_000,
		ChunkSize:   1_048_576,
		TotalChunks: 3,
	}

	for _, index := range []int{-1, 3, 4, 1000} {
		_, _, err := v.ChunkRange(index)
		require.ErrorIs(t, err, ErrInvalidChunkIndex, "index %d", index)
	}
}

func TestVideo_ChunkRanges_CoverFileExactly(t *testing.T) {
	cases := []struct {
		name      string
		fileSize  int64
		chunkSize int64
	}{
		{name: "remainder tail", fileSize: 2_500_000, chunkSize: 1_048_576},
		{name: "exact multiple", fileSize: 8 * 1024, chunkSize: 1024},
		{name: "single partial chunk", fileSize: 100, chunkSize: 1024},
		{name: "chunk size one", fileSize: 17, chunkSize: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := &Video{
				FileSize:    tc.fileSize,
				ChunkSize:   tc.chunkSize,
				TotalChunks: TotalChunksFor(tc.fileSize, tc.chunkSize),
			}

			var sum int64
			var nextOffset int64
			for i := 0; i < v.TotalChunks; i++ {
				offset, length, err := v.ChunkRange(i)
				require.NoError(t, err)
				require.Equal(t, nextOffset, offset, "chunks must be contiguous")
				require.Positive(t, length)
				if !v.IsLastChunk(i) {
					require.Equal(t, tc.chunkSize, length, "only the last chunk may be short")
				} else {
					require.LessOrEqual(t, length, tc.chunkSize)
				}
				sum += length
				nextOffset = offset + length
			}
			require.Equal(t, tc.fileSize, sum)
		})
	}
}

func TestVideo_FormattedFileSize(t *testing.T) {
	cases := []struct {
		fileSize int64
		want     string
	}{
		{fileSize: 0, want: "0 B"},
		{fileSize: 512, want: "512 B"},
		{fileSize: 2048, want: "2.00 KB"},
		{fileSize: 5 * 1024 * 1024, want: "5.00 MB"},
		{fileSize: 3 * 1024 * 1024 * 1024, want: "3.00 GB"},
	}

	for _, tc := range cases {
		v := &Video{FileSize: tc.fileSize}
		require.Equal(t, tc.want, v.FormattedFileSize())
	}
}

func TestVideo_FormattedDuration(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{seconds: 0, want: "00:00"},
		{seconds: 59, want: "00:59"},
		{seconds: 75, want: "01:15"},
		{seconds: 3600, want: "01:00:00"},
		{seconds: 3735, want: "01:02:15"},
	}

	for _, tc := range cases {
		v := &Video{DurationSeconds: tc.seconds}
		require.Equal(t, tc.want, v.FormattedDuration())
	}
}

func TestVideo_IsAvailableForStreaming(t *testing.T) {
	require.True(t, (&Video{Status: constant.VideoStatusReady}).IsAvailableForStreaming())
	require.False(t, (&Video{Status: constant.VideoStatusError}).IsAvailableForStreaming())
	require.False(t, (&Video{Status: constant.VideoStatusPending}).IsAvailableForStreaming())
}
