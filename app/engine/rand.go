package engine

import (
	crand "crypto/rand"
	"encoding/binary"
)

// Rand supplies every random draw the engine makes. Production uses
// crypto/rand so a client with partial information cannot predict dice or
// deck order; tests swap in a scripted source.
type Rand interface {
	// Die returns a uniform draw in [1,6].
	Die() int
	// Intn returns a uniform draw in [0,n).
	Intn(n int) int
}

type cryptoRand struct{}

func (cryptoRand) Intn(n int) int {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	return int(binary.BigEndian.Uint64(b[:]) % uint64(n))
}

func (r cryptoRand) Die() int {
	return r.Intn(6) + 1
}

// CryptoRand is the production randomness source.
var CryptoRand Rand = cryptoRand{}

// shuffle runs Fisher-Yates over ids using the engine's source.
func (e *Engine) shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}
