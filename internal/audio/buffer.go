package audio

import (
	"bytes"
	"fmt"
	"io"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Buffer holds decoded PCM audio for one invocation. It is created once,
// sliced by the planner/splitter and discarded after segmentation.
type Buffer struct {
	data       []int // interleaved samples
	sampleRate int
	channels   int
	bitDepth   int
}

// Decode reads a WAV stream into a Buffer.
func Decode(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV stream")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode PCM: %w", err)
	}
	if pcm.Format == nil || pcm.Format.SampleRate <= 0 || pcm.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("invalid WAV format header")
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}

	return &Buffer{
		data:       pcm.Data,
		sampleRate: pcm.Format.SampleRate,
		channels:   pcm.Format.NumChannels,
		bitDepth:   bitDepth,
	}, nil
}

// DecodeBytes decodes an in-memory WAV payload.
func DecodeBytes(data []byte) (*Buffer, error) {
	return Decode(bytes.NewReader(data))
}

// SampleRate returns samples per second per channel.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Channels returns the channel count.
func (b *Buffer) Channels() int { return b.channels }

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.channels == 0 {
		return 0
	}
	return len(b.data) / b.channels
}

// Duration returns the total play time of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.sampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.sampleRate)
}

// DurationMs returns the total play time in milliseconds.
func (b *Buffer) DurationMs() int64 {
	return b.Duration().Milliseconds()
}

// Slice returns the sub-buffer covering [startMs, endMs), clamped to the
// buffer bounds. The returned Buffer shares the underlying sample data.
func (b *Buffer) Slice(startMs, endMs int64) *Buffer {
	if startMs < 0 {
		startMs = 0
	}
	if total := b.DurationMs(); endMs > total {
		endMs = total
	}
	if endMs < startMs {
		endMs = startMs
	}

	startFrame := int(startMs * int64(b.sampleRate) / 1000)
	endFrame := int(endMs * int64(b.sampleRate) / 1000)
	if endFrame > b.Frames() {
		endFrame = b.Frames()
	}

	return &Buffer{
		data:       b.data[startFrame*b.channels : endFrame*b.channels],
		sampleRate: b.sampleRate,
		channels:   b.channels,
		bitDepth:   b.bitDepth,
	}
}

// Encode writes the buffer as a PCM WAV stream. The writer must support
// seeking because the RIFF header is patched after the data chunk.
func (b *Buffer) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, b.sampleRate, b.bitDepth, b.channels, 1)

	pcm := &gaudio.IntBuffer{
		Data:           b.data,
		Format:         &gaudio.Format{NumChannels: b.channels, SampleRate: b.sampleRate},
		SourceBitDepth: b.bitDepth,
	}
	if err := enc.Write(pcm); err != nil {
		return fmt.Errorf("encode PCM: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize WAV: %w", err)
	}
	return nil
}
