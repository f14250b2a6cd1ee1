package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/profilesync/internal/common"
)

// progressReader hands the body to the store in chunks of at most
// chunkSize bytes and reports the transferred ratio after every full chunk.
// The final chunk is not reported: 1.0 is only sent once the store has
// acknowledged the write.
type progressReader struct {
	ctx       context.Context
	r         io.Reader
	total     int64
	chunkSize int64
	read      int64
	inChunk   int64
	emit      func(ctx context.Context, v float64) error
}

func (p *progressReader) Read(b []byte) (int, error) {
	if left := p.chunkSize - p.inChunk; int64(len(b)) > left {
		b = b[:left]
	}
	if left := p.total - p.read; int64(len(b)) > left {
		b = b[:left]
	}
	if len(b) == 0 {
		return 0, io.EOF
	}

	n, err := p.r.Read(b)
	p.read += int64(n)
	p.inChunk += int64(n)

	if err == io.EOF && p.read < p.total {
		return n, fmt.Errorf("%w: body ended after %d of %d bytes", common.ErrInvalidPayload, p.read, p.total)
	}

	if p.inChunk == p.chunkSize {
		p.inChunk = 0
		if p.read < p.total {
			if emitErr := p.emit(p.ctx, float64(p.read)/float64(p.total)); emitErr != nil {
				return n, emitErr
			}
		}
	}
	if p.read == p.total && err == nil {
		err = io.EOF
	}
	return n, err
}
