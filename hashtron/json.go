package hashtron

import "encoding/json"
import "errors"
import "io"

type jsonHashtron struct {
	Program [][2]uint32 `json:"program"`
	Bits    byte        `json:"bits"`
}

// WriteJson writes the hashtron as a single JSON object
func (h Hashtron) WriteJson(w io.Writer) error {
	buf, err := json.Marshal(jsonHashtron{Program: h.program, Bits: h.bits})
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// ReadJson reads one JSON object from the decoder into the hashtron
func (h *Hashtron) ReadJson(dec *json.Decoder) error {
	var j jsonHashtron
	if err := dec.Decode(&j); err != nil {
		return err
	}
	if len(j.Program) == 0 {
		return ErrEmptyProgram
	}
	if j.Bits > 16 {
		return errors.New("hashtron can't output more than 16 bits")
	}
	if j.Bits == 0 {
		j.Bits = 1
	}
	h.program = j.Program
	h.bits = j.Bits
	return nil
}
