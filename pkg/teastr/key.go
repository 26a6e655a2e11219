package teastr

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/scrypt"
)

const (
	// SourceDateEpochEnv is the environment variable consulted by BuildTime for reproducible builds.
	SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

	buildTimeLayout = "15:04:05"
	buildDateLayout = "Jan _2 2006"

	passphraseCost     = 1 << 15
	passphraseBlocks   = 8
	passphraseParallel = 1
	keySize            = 16
)

var (
	ErrEmptyPassphrase = errors.New("cannot use an empty passphrase")
	ErrInvalidEpoch    = errors.New("invalid " + SourceDateEpochEnv)

	// passphraseSalt is fixed so that the same passphrase always yields the same Seed.
	passphraseSalt = []byte("teastr/seed/v1\x00\x9e\x37\x79\xb9")
)

// Key is the 128-bit key used by the block cipher.
type Key [4]uint32

// Seed holds the four values a Key is derived from.
type Seed struct {
	S1, S2, S3, S4 uint32
}

// GenerateKey permutes the seed values into a Key.
// Any seed is accepted, including all zeros.
func GenerateKey(seed Seed) Key {
	return Key{seed.S3, seed.S1, seed.S4, seed.S2}
}

// DefaultSeed takes the first two characters of the time and date at t, formatted as "15:04:05" and "Jan _2 2006".
func DefaultSeed(t time.Time) Seed {
	clock := t.Format(buildTimeLayout)
	date := t.Format(buildDateLayout)
	return Seed{
		S1: uint32(clock[0]),
		S2: uint32(clock[1]),
		S3: uint32(date[0]),
		S4: uint32(date[1]),
	}
}

// BuildTime returns the time described by SOURCE_DATE_EPOCH if it's set, or the current time otherwise.
func BuildTime() (time.Time, error) {
	epoch, ok := os.LookupEnv(SourceDateEpochEnv)
	if !ok || len(epoch) == 0 {
		return time.Now(), nil
	}
	secs, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidEpoch, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// SeedFromPassphrase derives a Seed from pass using scrypt with a fixed salt.
// The same passphrase will always result in the same Seed, which is useful for reproducible builds.
func SeedFromPassphrase(pass []byte) (Seed, error) {
	if len(pass) == 0 {
		return Seed{}, ErrEmptyPassphrase
	}
	derived, err := scrypt.Key(pass, passphraseSalt, passphraseCost, passphraseBlocks, passphraseParallel, keySize)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to derive seed from passphrase: %w", err)
	}
	return Seed{
		S1: binary.BigEndian.Uint32(derived[0:]),
		S2: binary.BigEndian.Uint32(derived[4:]),
		S3: binary.BigEndian.Uint32(derived[8:]),
		S4: binary.BigEndian.Uint32(derived[12:]),
	}, nil
}
