package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto wraps the crypto/rand library
type Crypto struct{}

// Intn returns a random number from 0 < n
func (c Crypto) Intn(n int) int {
	return int(c.bigInt(int64(n)))
}

// Int63 returns a non-negative random 63-bit integer.
// Useful for seeding deterministic shuffles.
func (c Crypto) Int63() int64 {
	return c.bigInt(int64(1) << 62)
}

func (c Crypto) bigInt(max int64) int64 {
	b, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		panic(err)
	}

	return b.Int64()
}
