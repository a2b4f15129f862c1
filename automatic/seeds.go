package automatic

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"
)

// SeedSize is the size of a run seed in bytes.
const SeedSize = 32

// GenerateSeed creates a random seed for a reproducible run.
func GenerateSeed() [SeedSize]byte {
	var seed [SeedSize]byte
	frand.Read(seed[:])
	return seed
}

// FormatSeed encodes a seed with URL-safe base64.
func FormatSeed(seed [SeedSize]byte) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}

// ParseSeed decodes a seed written by FormatSeed.
func ParseSeed(s string) ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		// Try standard encoding too
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return seed, fmt.Errorf("failed to decode seed: %w", err)
		}
	}
	if len(decoded) != SeedSize {
		return seed, fmt.Errorf("invalid seed length: got %d bytes, expected %d", len(decoded), SeedSize)
	}
	copy(seed[:], decoded)
	return seed, nil
}

// gameRNG returns the generator for game n of a seeded run. Each game
// gets its own stream so results do not depend on which worker plays it.
func gameRNG(seed [SeedSize]byte, n int) *frand.RNG {
	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], uint64(n))
	for i, b := range counter {
		seed[i] ^= b
	}
	return frand.NewCustom(seed[:], 1024, 12)
}
