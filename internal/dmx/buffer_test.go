package dmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()
	require.NotNil(t, b)
	assert.Equal(t, MaxSlots, b.SlotCount())
	assert.Equal(t, MaxSlots, len(b.Raw()))
}

func TestSlotRoundTrip(t *testing.T) {
	b := NewBuffer()
	for slot := 1; slot <= MaxSlots; slot++ {
		b.SetSlot(slot, byte(slot%256))
	}
	for slot := 1; slot <= MaxSlots; slot++ {
		assert.Equal(t, byte(slot%256), b.Slot(slot), "slot %d", slot)
	}
}

func TestSlotOutOfRange(t *testing.T) {
	b := NewBuffer()
	b.SetSlot(1, 255)

	// Invalid writes are absorbed, invalid reads come back as zero.
	b.SetSlot(0, 10)
	b.SetSlot(-1, 10)
	b.SetSlot(513, 10)

	assert.Equal(t, byte(0), b.Slot(0))
	assert.Equal(t, byte(0), b.Slot(-1))
	assert.Equal(t, byte(0), b.Slot(513))
	assert.Equal(t, byte(255), b.Slot(1))
}

func TestSlotBeyondSlotCount(t *testing.T) {
	b := NewBuffer()
	b.SetSlot(10, 42)
	b.SetSlotCount(3)

	// Reads past the valid length return zero even if data was written.
	assert.Equal(t, byte(0), b.Slot(10))

	b.SetSlotCount(10)
	assert.Equal(t, byte(42), b.Slot(10))
}

func TestSetSlotCountClamps(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below minimum", in: 0, want: 1},
		{name: "negative", in: -5, want: 1},
		{name: "in range", in: 24, want: 24},
		{name: "maximum", in: 512, want: 512},
		{name: "above maximum", in: 600, want: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			b.SetSlotCount(tt.in)
			assert.Equal(t, tt.want, b.SlotCount())
		})
	}
}

func TestLoad(t *testing.T) {
	b := NewBuffer()
	b.Load([]byte{10, 20, 30})

	assert.Equal(t, 3, b.SlotCount())
	assert.Equal(t, []byte{10, 20, 30}, b.Raw())
	assert.Equal(t, byte(10), b.Slot(1))
	assert.Equal(t, byte(30), b.Slot(3))
}

func TestLoadTruncatesOversizedInput(t *testing.T) {
	b := NewBuffer()
	b.Load(make([]byte, 600))
	assert.Equal(t, MaxSlots, b.SlotCount())
}
