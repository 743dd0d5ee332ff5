package chip8

// Options holds the four interpreter quirk toggles that distinguish
// CHIP-8 implementations, per spec.md §6.
type Options struct {
	// CopyAndShift makes 8XY6/8XYE copy V[y] into V[x] before shifting.
	CopyAndShift bool

	// IncrementAddress makes FX55/FX65 advance I by x+1 after the copy.
	IncrementAddress bool

	// QuirkyJump makes BNNN use V[x] instead of V[0].
	QuirkyJump bool

	// ResetFlag makes 8XY1/8XY2/8XY3 clear V[F] after the op.
	ResetFlag bool
}

// DefaultOptions returns the classic CHIP-8 default quirk set.
func DefaultOptions() Options {
	return Options{
		CopyAndShift:     true,
		IncrementAddress: true,
		QuirkyJump:       false,
		ResetFlag:        true,
	}
}

// DefaultSuperChipOptions returns the SUPER-CHIP default quirk set,
// which disagrees with the classic defaults on every toggle.
func DefaultSuperChipOptions() Options {
	return Options{
		CopyAndShift:     false,
		IncrementAddress: false,
		QuirkyJump:       true,
		ResetFlag:        false,
	}
}

// DefaultDisplayOptions returns the classic CHIP-8 default display quirks.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{ClipSprites: true}
}

// DefaultSuperChipDisplayOptions returns the SUPER-CHIP default display quirks.
func DefaultSuperChipDisplayOptions() DisplayOptions {
	return DisplayOptions{ClipSprites: true}
}
