package mars

import "errors"

// ErrInvariantViolation is returned by RunBattle if the dispatcher reaches
// an opcode/modifier combination it has no case for. It should never
// happen for instructions produced by Encode; it exists because the
// dispatch switch, like the simulator it's grounded on, has no way to
// prove exhaustiveness to the compiler.
var ErrInvariantViolation = errors.New("mars: invariant violation: unhandled opcode/modifier in dispatch")
