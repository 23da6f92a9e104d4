package pathenc

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/scrypt"

	"github.com/driftloom/photofs/pkg/errors"
)

// scrypt parameters for folder-key derivation. These match the peer's key
// generator; changing them breaks interoperability.
const (
	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// FolderKey derives the 32-byte folder key from a folder identifier and the
// user's password. The key is recomputed on every use and never persisted.
func FolderKey(folderID, password string) (*[KeySize]byte, error) {
	raw, err := scrypt.Key([]byte(password), []byte(folderID), scryptN, scryptR, scryptP, KeySize)
	if err != nil {
		return nil, errors.WithContext(err, "derive folder key")
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return &key, nil
}

// FileKey derives the per-file symmetric key for the content-encryption
// layer from the plaintext file name and the folder key.
func FileKey(name string, folderKey *[KeySize]byte) (*[KeySize]byte, error) {
	kdf := hkdf.New(sha256.New, folderKey[:], []byte(name), nil)

	var key [KeySize]byte
	if _, err := io.ReadFull(kdf, key[:]); err != nil {
		return nil, errors.WithContext(err, "derive file key")
	}
	return &key, nil
}

// FileKeyBase32 returns the per-file key in the same base32-hex form used
// for encrypted names.
func FileKeyBase32(name string, folderKey *[KeySize]byte) (string, error) {
	fileKey, err := FileKey(name, folderKey)
	if err != nil {
		return "", err
	}
	return base32Hex.EncodeToString(fileKey[:]), nil
}
