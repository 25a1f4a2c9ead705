//go:build windows

package windows

import (
	"context"

	"github.com/saltosystems/winrt-go/windows/storage/streams"

	wrh "github.com/nowplaying-org/media-session/windows/internal/winrthelper"
)

// readThumbnail opens the thumbnail stream reference and reads the full
// payload into memory.
func (s *Session) readThumbnail(ctx context.Context, ref *streams.IRandomAccessStreamReference) ([]byte, error) {
	op, err := ref.OpenReadAsync()
	if err != nil {
		return nil, err
	}

	res, err := wrh.Await(ctx, op, streams.SignatureIRandomAccessStreamWithContentType)
	if err != nil {
		return nil, err
	}

	stream := (*streams.IRandomAccessStreamWithContentType)(res)
	defer stream.Release()

	size, err := stream.GetSize()
	if err != nil || size == 0 {
		return nil, err
	}

	buffer, err := streams.NewBuffer(uint32(size))
	if err != nil {
		return nil, err
	}
	defer buffer.Release()

	readOp, err := stream.ReadAsync(buffer, uint32(size), streams.InputStreamOptionsNone)
	if err != nil {
		return nil, err
	}

	readRes, err := wrh.AwaitWithProgress(ctx, readOp, streams.SignatureIBuffer, wrh.SignatureUInt32)
	if err != nil {
		return nil, err
	}

	filled := (*streams.IBuffer)(readRes)
	defer filled.Release()

	length, err := filled.GetLength()
	if err != nil {
		return nil, err
	}

	reader, err := streams.DataReaderFromBuffer(filled)
	if err != nil {
		return nil, err
	}
	defer reader.Release()

	return reader.ReadBytes(length)
}
