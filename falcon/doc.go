// Package falcon implements the Falcon lattice signature scheme over the
// NTRU trapdoor: key generation (sampling a short basis and solving
// f*G - g*F = q), fast-Fourier sampling of signatures against a hashed
// target, verification by norm check, and the compact bit-level encodings
// of keys and signatures.
//
// Exact arithmetic modulo q runs over a Lattigo NTT ring; the approximate
// Fourier-domain arithmetic used by the sampler is an isolated complex128
// module (see fft.go for its precision contract). Randomness is always an
// injected utils.PRNG, never package state.
package falcon
