// Package fingerprint derives the comparison keys the duplicate pipeline
// groups files by: a cheap size key read from metadata, and an expensive
// content key computed by hashing the whole file.
package fingerprint

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// DigestSize is the length of a content digest in bytes (512 bits).
const DigestSize = 64

// Digest is a 512-bit BLAKE3 digest of a file's full contents. Equal
// digests are treated as content identity throughout the pipeline; no
// byte-for-byte confirmation pass follows a digest match.
type Digest [DigestSize]byte

// readBufferSize is the chunk size used when streaming file contents into
// the hasher.
const readBufferSize = 4096

// Size returns the file's length in bytes. It reads metadata only and
// never opens the file. The path is lstat'd, so a symlink reports its own
// length rather than its target's.
func Size(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("reading metadata for %s: %w", path, err)
	}
	return info.Size(), nil
}

// Checksum computes the content digest of the file at path. The file is
// read sequentially to EOF through a fixed-size buffer; every byte
// contributes to the digest. Identical content always produces an
// identical digest.
func Checksum(path string) (Digest, error) {
	var digest Digest

	f, err := os.Open(path)
	if err != nil {
		return digest, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	hasher := blake3.New()
	buf := make([]byte, readBufferSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return digest, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if _, err := io.ReadFull(hasher.Digest(), digest[:]); err != nil {
		return digest, fmt.Errorf("finalizing digest for %s: %w", path, err)
	}
	return digest, nil
}
