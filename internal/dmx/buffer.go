// Package dmx holds the node's single universe of DMX level data.
package dmx

// MaxSlots is the number of slots (channels) in a full DMX512 universe.
const MaxSlots = 512

// Buffer stores up to 512 slot values plus the count of slots considered
// valid for output. Slots are 1-indexed in the public API, matching DMX
// addressing. Out-of-range indices are absorbed, never an error.
type Buffer struct {
	data  [MaxSlots]byte
	slots int
}

// NewBuffer returns a zeroed buffer sized to a full universe.
func NewBuffer() *Buffer {
	return &Buffer{slots: MaxSlots}
}

// SlotCount returns the number of valid slots (1-512).
func (b *Buffer) SlotCount() int {
	return b.slots
}

// SetSlotCount clamps n to [1, 512] and records it as the valid length.
func (b *Buffer) SetSlotCount(n int) {
	if n < 1 {
		n = 1
	}
	if n > MaxSlots {
		n = MaxSlots
	}
	b.slots = n
}

// Slot returns the level for slot 1-512, or 0 for any index outside the
// valid range.
func (b *Buffer) Slot(slot int) byte {
	if slot < 1 || slot > b.slots {
		return 0
	}
	return b.data[slot-1]
}

// SetSlot stores a level for slot 1-512. Writes outside that range are
// ignored.
func (b *Buffer) SetSlot(slot int, value byte) {
	if slot < 1 || slot > MaxSlots {
		return
	}
	b.data[slot-1] = value
}

// Load copies values into the buffer and sets the slot count to the
// copied length. Input beyond 512 bytes is truncated.
func (b *Buffer) Load(values []byte) {
	n := copy(b.data[:], values)
	b.SetSlotCount(n)
}

// Raw returns the valid region of the buffer for bulk serialization.
// Callers must not grow the returned slice.
func (b *Buffer) Raw() []byte {
	return b.data[:b.slots]
}
