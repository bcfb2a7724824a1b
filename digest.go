package dat

import (
	"bytes"
	"encoding/base64"

	"github.com/minio/blake2b-simd"
)

// Digest dumps d and returns the blake2b-256 hash of the dumped bytes,
// base64 (URL, unpadded) encoded, suitable as a content-addressed name
// in a BlobStore. Two DoubleArrays with identical BASE/CHECK/values
// always digest identically, since compilation is deterministic.
func (d *DoubleArray[V]) Digest() (string, error) {
	var buf bytes.Buffer
	if err := d.Dump(&buf); err != nil {
		return "", err
	}
	sum := blake2b.Sum256(buf.Bytes())
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}
