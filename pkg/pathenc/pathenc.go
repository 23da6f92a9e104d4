// Package pathenc derives obfuscated, length-bounded path names for files
// placed in encrypted-at-rest folders.
//
// The transformation is deterministic on purpose: two peers must agree on
// the storage location of a file without exchanging any extra metadata, so
// the same plaintext name and folder key always produce the same path. It is
// also strictly one-way; this layer never decrypts a path.
package pathenc

import (
	"encoding/base32"
	"strings"

	"github.com/miscreant/miscreant.go"
)

const (
	// KeySize is the folder and file key size in bytes.
	KeySize = 32

	// sivAlgorithm is the deterministic AEAD used for name encryption. The
	// choice is a compatibility requirement with peers, not a free design
	// choice; AES-SIV is misuse-resistant and needs no random nonce.
	sivAlgorithm = "AES-SIV"

	// maxPathComponent bounds the length of every generated path segment,
	// in characters, to respect typical filesystem component limits.
	maxPathComponent = 200

	// encryptedDirSuffix tags the top-level directories of the encrypted
	// tree. Peers rely on this exact value.
	encryptedDirSuffix = ".syncthing-enc"
)

// base32Hex preserves lexical sort order of the encoded names, which the
// host engine's tree balancing relies on.
var base32Hex = base32.HexEncoding.WithPadding(base32.NoPadding)

// EncryptName deterministically encrypts a plaintext name with the folder
// key. Repeated calls with the same inputs yield identical ciphertext.
func EncryptName(name string, key *[KeySize]byte) []byte {
	aead, err := miscreant.NewAEAD(sivAlgorithm, key[:], 0)
	if err != nil {
		// The key size is fixed, so the cipher can't fail to initialize.
		panic("cipher failure: " + err.Error())
	}
	return aead.Seal(nil, nil, []byte(name), nil)
}

// EncryptedPath returns the bounded-depth wire path for a plaintext name:
// the encrypted name, base32-hex encoded and slashified.
func EncryptedPath(name string, key *[KeySize]byte) string {
	return Slashify(base32Hex.EncodeToString(EncryptName(name, key)))
}

// Slashify inserts slashes (and the encrypted-directory suffix) into the
// string to create an appropriate tree. ABCDEFGH... becomes
// A.syncthing-enc/BC/DEFGH..., with the remainder chunked into segments of
// at most maxPathComponent characters. Forward slashes are fine here; the
// slash is the wire format, outside of native path handling.
//
// We somewhat sloppily assume bytes == characters, which holds for the
// base32 alphabet the inputs come from. Don't feed this arbitrary Unicode.
func Slashify(s string) string {
	comps := make([]string, 0, len(s)/maxPathComponent+3)
	comps = append(comps, s[:1]+encryptedDirSuffix)
	s = s[1:]
	comps = append(comps, s[:2])
	s = s[2:]

	for len(s) > maxPathComponent {
		comps = append(comps, s[:maxPathComponent])
		s = s[maxPathComponent:]
	}
	if len(s) > 0 {
		comps = append(comps, s)
	}
	return strings.Join(comps, "/")
}
