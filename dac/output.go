package dac

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Frame is one started transfer as seen by an Output.
type Frame struct {
	Device     string
	Words      []uint32
	Divider    int
	SampleRate float64
	Gains      [Channels]Gain
}

// Output receives frames when a device starts.
type Output interface {
	Write(frame Frame) error
}

// MemoryOutput keeps every frame it receives.
type MemoryOutput struct {
	mu     sync.Mutex
	frames []Frame
}

// Write records frame.
func (m *MemoryOutput) Write(frame Frame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, frame)
	return nil
}

// Frames returns the recorded frames in arrival order.
func (m *MemoryOutput) Frames() []Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Frame(nil), m.frames...)
}

// FileOutput appends frame words little-endian to a writer, the same byte
// order the DMA engine reads from memory.
type FileOutput struct {
	w io.Writer
}

// NewFileOutput returns an Output writing to w.
func NewFileOutput(w io.Writer) *FileOutput {
	return &FileOutput{w: w}
}

// Write appends frame.Words to the underlying writer.
func (f *FileOutput) Write(frame Frame) error {
	if err := binary.Write(f.w, binary.LittleEndian, frame.Words); err != nil {
		return fmt.Errorf("write %d words: %w", len(frame.Words), err)
	}
	return nil
}

// EncodeWords returns words as little-endian bytes.
func EncodeWords(words []uint32) []byte {
	out := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}
