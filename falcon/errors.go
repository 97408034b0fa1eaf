package falcon

import "errors"

var (
	// ErrInvalidSeedLength reports a keygen seed of the wrong size.
	ErrInvalidSeedLength = errors.New("falcon: seed must be exactly 32 bytes")

	// ErrNotInvertible reports a polynomial that is not a unit mod q.
	// During key generation it only triggers a resample.
	ErrNotInvertible = errors.New("falcon: polynomial not invertible mod q")

	// ErrKeyGenerationFailed reports an exhausted keygen trial budget.
	ErrKeyGenerationFailed = errors.New("falcon: key generation trial budget exhausted")

	// ErrSigningAborted reports a fatal signing failure: either the RNG
	// failed or the rejection-sampling budget ran out.
	ErrSigningAborted = errors.New("falcon: signing aborted")

	// ErrInvalidSignatureEncoding reports malformed signature bytes.
	ErrInvalidSignatureEncoding = errors.New("falcon: invalid signature encoding")

	// ErrInvalidKeyEncoding reports malformed key bytes.
	ErrInvalidKeyEncoding = errors.New("falcon: invalid key encoding")
)
