// Package gpg shells out to the gpg binary for every encryption concern
// autopass delegates: revealing store entries and sealing the metadata cache.
package gpg

import (
	"context"

	"github.com/eltomello/autopass/internal/cmd"
)

// Crypter encrypts and decrypts opaque blobs. The cache store depends on
// this seam so tests can swap in a fake.
type Crypter interface {
	Encrypt(ctx context.Context, recipient string, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// CLI implements Crypter on top of the gpg binary.
type CLI struct{}

// Encrypt seals plaintext for the recipient key, reading and writing on a
// pipe.
func (CLI) Encrypt(ctx context.Context, recipient string, plaintext []byte) ([]byte, error) {
	return cmd.OutputInput(ctx, plaintext, "gpg",
		"--batch", "--quiet", "--yes", "--encrypt", "--recipient", recipient)
}

// Decrypt opens a sealed blob using whatever secret key the agent holds.
func (CLI) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	return cmd.OutputInput(ctx, ciphertext, "gpg", "--batch", "--quiet", "--decrypt")
}

// DecryptFile decrypts one on-disk file, as used for store entries.
func DecryptFile(ctx context.Context, path string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "gpg", "--batch", "--quiet", "--decrypt", path)
}

// CheckRecipient verifies a public key for the recipient is present in the
// keyring.
func CheckRecipient(ctx context.Context, recipient string) error {
	_, err := cmd.OutputContext(ctx, "", "gpg", "--batch", "--quiet", "--list-keys", recipient)
	return err
}

// Available reports whether the gpg binary is on PATH.
func Available() bool {
	return cmd.LookPath("gpg")
}
