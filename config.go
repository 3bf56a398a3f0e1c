package cinit

// Config holds the few knobs the initializer lowering actually needs:
// the widths of the integer types the zero-fill engine is allowed to
// use when synthesizing padding writes. Unlike the teacher's
// string-keyed Config map (apt for a grammar/compiler toolkit with a
// long tail of optional settings), this subsystem has a fixed, small
// set of target-ABI facts, so a typed struct is the more honest fit —
// there's no unbounded settings surface here to justify a dynamic map.
type Config struct {
	// CharWidth/ShortWidth/IntWidth/LongWidth are the byte widths of
	// the four integer ranks the zero-fill engine picks from; the
	// bit-field unit size is always one of these.
	CharWidth  int
	ShortWidth int
	IntWidth   int
	LongWidth  int
}

// NewConfig returns the defaults for an LP64 target (char=1, short=2,
// int=4, long=8), matching the widths ctype.SizeOf already assumes for
// its scalar kinds.
func NewConfig() *Config {
	return &Config{
		CharWidth:  1,
		ShortWidth: 2,
		IntWidth:   4,
		LongWidth:  8,
	}
}
