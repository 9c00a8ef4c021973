package intelligence

import "errors"

var (
	ErrSessionClosed  = errors.New("intelligence: session closed")
	ErrInvalidRuleset = errors.New("intelligence: invalid ruleset")
	ErrInvalidConfig  = errors.New("intelligence: invalid config")
)
