// Package cryptox implements password credential hashing for journalkeeper.
//
// Credentials are argon2id hashes in PHC string format, embedding the
// algorithm parameters and salt:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 hash>
//
// Hashing is deliberately expensive (tens of milliseconds); callers are
// expected to run it through hashpool rather than directly on a request
// handler goroutine.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// HashPassword derives an argon2id hash of password with a fresh random
// salt and returns the PHC-encoded credential string.
func HashPassword(password string) (string, error) {
	salt := common.GenerateRandByteArray(saltLen)
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// VerifyPassword recomputes the hash of password using the parameters and
// salt embedded in credential and compares in constant time.
//
// A structurally valid credential that does not match yields (false, nil).
// A credential that cannot be parsed yields common.ErrCorruptCredential.
func VerifyPassword(password, credential string) (bool, error) {
	salt, hash, time, memory, threads, err := decodeCredential(credential)
	if err != nil {
		return false, err
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}

func decodeCredential(credential string) (salt, hash []byte, time, memory uint32, threads uint8, err error) {
	parts := strings.Split(credential, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, common.ErrCorruptCredential
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, common.ErrCorruptCredential
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, nil, 0, 0, 0, common.ErrCorruptCredential
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, common.ErrCorruptCredential
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, nil, 0, 0, 0, common.ErrCorruptCredential
	}

	return salt, hash, time, memory, threads, nil
}
