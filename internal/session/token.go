package session

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// KeySize is the signing key length blake3 keyed mode requires
const KeySize = 32

// sign computes the keyed hash over the serialized user, the provider
// tokens, and the issue timestamp. Fields are length-prefixed so no two
// distinct inputs share an encoding.
func sign(key []byte, userJSON []byte, accessToken, refreshToken string, issuedAt int64) (string, error) {
	hasher, err := blake3.NewKeyed(key)
	if err != nil {
		return "", fmt.Errorf("initializing keyed hash: %w", err)
	}

	writeField := func(b []byte) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(b)))
		_, _ = hasher.Write(n[:])
		_, _ = hasher.Write(b)
	}

	writeField(userJSON)
	writeField([]byte(accessToken))
	writeField([]byte(refreshToken))

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(issuedAt))
	_, _ = hasher.Write(ts[:])

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// verify compares tokens in constant time
func verify(expected, got string) bool {
	want, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	have, err := hex.DecodeString(got)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, have) == 1
}
