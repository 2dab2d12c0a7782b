package redcode

import "fmt"

// MarshalText renders an OpCode as its mnemonic, so JSON-encoded
// instructions read as "MOV" instead of a bare integer.
func (o OpCode) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// UnmarshalText parses a mnemonic back into an OpCode.
func (o *OpCode) UnmarshalText(text []byte) error {
	for i, name := range opNames {
		if name == string(text) {
			*o = OpCode(i)
			return nil
		}
	}
	return fmt.Errorf("redcode: unknown opcode %q", text)
}

// MarshalText renders a Modifier as its letter code (F, A, B, AB, ...).
func (m Modifier) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText parses a modifier letter code back into a Modifier.
func (m *Modifier) UnmarshalText(text []byte) error {
	for i, name := range modNames {
		if name == string(text) {
			*m = Modifier(i)
			return nil
		}
	}
	return fmt.Errorf("redcode: unknown modifier %q", text)
}

// MarshalText renders an AddrMode as its symbol ($, #, @, <, >, *, {, }).
func (a AddrMode) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText parses an addressing mode symbol back into an AddrMode.
func (a *AddrMode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*a = AddrMode(i)
			return nil
		}
	}
	return fmt.Errorf("redcode: unknown addressing mode %q", text)
}
