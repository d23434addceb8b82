package hashtron

import "errors"

// ErrEmptyProgram is returned when a hashtron would have no hashing commands.
var ErrEmptyProgram = errors.New("hashtron program is empty")

// New creates a hashtron running program and producing bits output bits.
// Zero bits means one bit.
func New(program [][2]uint32, bits byte) (h *Hashtron, err error) {
	if len(program) == 0 {
		return nil, ErrEmptyProgram
	}
	if bits == 0 {
		bits = 1
	}
	if bits > 16 {
		return nil, errors.New("hashtron can't output more than 16 bits")
	}
	h = new(Hashtron)
	h.program = program
	h.bits = bits
	return
}
