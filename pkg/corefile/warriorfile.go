// Package corefile reads and writes warriors as JSON instruction arrays.
// A redcode text assembler is out of scope for this simulator, so this
// is the on-disk format every loader and tool in this repository speaks
// instead -- the role the teacher's pkg/result JSON round trip plays for
// optimization rules, applied to loadable warrior code.
package corefile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/corewars/go-mars/pkg/redcode"
)

// Instr is the JSON-friendly mirror of a redcode.Instruction: mnemonics
// instead of packed bit fields, so a hand-written warrior file stays
// readable.
type Instr struct {
	Op     redcode.OpCode   `json:"op"`
	Mod    redcode.Modifier `json:"mod"`
	AMode  redcode.AddrMode `json:"aMode"`
	BMode  redcode.AddrMode `json:"bMode"`
	A      uint16           `json:"a"`
	B      uint16           `json:"b"`
}

// WarriorFile is the top-level JSON document: a name for reporting plus
// the warrior's instruction sequence.
type WarriorFile struct {
	Name         string  `json:"name"`
	Instructions []Instr `json:"instructions"`
}

// Encode converts WarriorFile instructions to the packed form the core
// engine operates on.
func (wf WarriorFile) Encode() []redcode.Instruction {
	out := make([]redcode.Instruction, len(wf.Instructions))
	for i, in := range wf.Instructions {
		out[i] = redcode.Instruction{
			In: redcode.Encode(in.Op, in.Mod, in.AMode, in.BMode),
			A:  in.A,
			B:  in.B,
		}
	}
	return out
}

// FromInstructions builds a WarriorFile from packed instructions, the
// inverse of Encode, for saving a core-resident warrior back out.
func FromInstructions(name string, code []redcode.Instruction) WarriorFile {
	wf := WarriorFile{Name: name, Instructions: make([]Instr, len(code))}
	for i, instr := range code {
		op, mod, aMode, bMode := redcode.Decode(redcode.StripFlags(instr.In))
		wf.Instructions[i] = Instr{Op: op, Mod: mod, AMode: aMode, BMode: bMode, A: instr.A, B: instr.B}
	}
	return wf
}

// Load parses a warrior JSON document and returns its packed
// instructions ready for Handle.LoadWarrior.
func Load(r io.Reader) ([]redcode.Instruction, string, error) {
	var wf WarriorFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&wf); err != nil {
		return nil, "", fmt.Errorf("corefile: decode warrior: %w", err)
	}
	if len(wf.Instructions) == 0 {
		return nil, "", fmt.Errorf("corefile: warrior %q has no instructions", wf.Name)
	}
	return wf.Encode(), wf.Name, nil
}

// Save writes code out as an indented warrior JSON document.
func Save(w io.Writer, name string, code []redcode.Instruction) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(FromInstructions(name, code))
}
