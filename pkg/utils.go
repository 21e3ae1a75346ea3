package pkg

import (
	crand "crypto/rand"
	"encoding/binary"
	"os"
)

// JWTSecret is the HS256 signing key shared by the login handler and the
// route guard.
func JWTSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("secret")
}

// codeAlphabet omits 0/O/1/I so codes survive being read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeAttempts = 8

// RandString returns n characters drawn from the room-code alphabet using
// a cryptographically strong source.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		var buf [8]byte
		if _, err := crand.Read(buf[:]); err != nil {
			panic(err)
		}
		b[i] = codeAlphabet[binary.BigEndian.Uint64(buf[:])%uint64(len(codeAlphabet))]
	}
	return string(b)
}

// NewRoomCode allocates a 6-character room code not yet claimed according
// to exists. After a bounded number of collisions it falls back to a
// longer code, which makes a further collision practically impossible.
func NewRoomCode(exists func(string) bool) string {
	for i := 0; i < codeAttempts; i++ {
		code := RandString(6)
		if !exists(code) {
			return code
		}
	}
	return RandString(8)
}
