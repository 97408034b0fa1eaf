package falcon

import (
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// SeedLen is the exact seed length accepted by Keygen.
const SeedLen = 32

// NewSeededPRNG expands a 32-byte seed into the deterministic generator
// driving key generation. The same seed always yields the same key pair.
func NewSeededPRNG(seed []byte) (utils.PRNG, error) {
	if len(seed) != SeedLen {
		return nil, ErrInvalidSeedLength
	}
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("falcon: keyed prng: %w", err)
	}
	return prng, nil
}

// NewSystemPRNG returns a generator keyed from the operating system entropy
// source, suitable for production signing.
func NewSystemPRNG() (utils.PRNG, error) {
	prng, err := utils.NewPRNG()
	if err != nil {
		return nil, fmt.Errorf("falcon: system prng: %w", err)
	}
	return prng, nil
}

// readFull fills buf from the generator, turning short reads into errors.
func readFull(prng utils.PRNG, buf []byte) error {
	if _, err := io.ReadFull(prng, buf); err != nil {
		return fmt.Errorf("prng read: %w", err)
	}
	return nil
}
