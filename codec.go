package dat

import (
	"encoding/binary"
	"fmt"
	"io"
)

var magic = [4]byte{'D', 'A', 'T', '1'}

const formatVersion uint16 = 1

// Dump writes d in the binary format documented in the package's design
// notes: magic, version, array length, BASE, CHECK, then a length-
// prefixed run of value blobs per leaf, in leaf-discovery order.
func (d *DoubleArray[V]) Dump(w io.Writer) error {
	bw := &byteWriter{w: w}
	bw.write(magic[:])
	bw.writeUint16(formatVersion)
	bw.writeUint64(uint64(len(d.base)))
	for _, b := range d.base {
		bw.writeInt32(b)
	}
	for _, c := range d.check {
		bw.writeUint32(uint32(c))
	}
	bw.writeUint64(uint64(len(d.groups)))
	for _, g := range d.groups {
		bw.writeUint32(uint32(g.count))
		for k := 0; k < g.count; k++ {
			blob := d.values[g.start+k]
			bw.writeUint32(uint32(len(blob)))
			bw.write(blob)
		}
	}
	return bw.err
}

// Load reads a DoubleArray previously written by Dump, checking that
// every value blob decodes with codec.
func Load[V any](r io.Reader, codec Codec[V]) (*DoubleArray[V], error) {
	br := &byteReader{r: r}

	var gotMagic [4]byte
	br.read(gotMagic[:])
	if br.err != nil {
		return nil, &FormatError{Reason: "reading magic", Err: br.err}
	}
	if gotMagic != magic {
		return nil, &FormatError{Reason: fmt.Sprintf("bad magic %v", gotMagic)}
	}

	version := br.readUint16()
	if br.err != nil {
		return nil, &FormatError{Reason: "reading version", Err: br.err}
	}
	if version != formatVersion {
		return nil, &FormatError{Reason: fmt.Sprintf("unsupported version %d", version)}
	}

	arrayLen := br.readUint64()
	if br.err != nil {
		return nil, &FormatError{Reason: "reading array length", Err: br.err}
	}

	base := make([]int32, arrayLen)
	for i := range base {
		base[i] = br.readInt32()
	}
	check := make([]int32, arrayLen)
	for i := range check {
		check[i] = int32(br.readUint32())
	}
	if br.err != nil {
		return nil, &FormatError{Reason: "reading arrays", Err: br.err}
	}

	groupCount := br.readUint64()
	if br.err != nil {
		return nil, &FormatError{Reason: "reading value group count", Err: br.err}
	}

	groups := make([]valueGroup, groupCount)
	var values [][]byte
	for i := range groups {
		n := br.readUint32()
		if br.err != nil {
			return nil, &FormatError{Reason: "reading value count", Err: br.err}
		}
		groups[i] = valueGroup{start: len(values), count: int(n)}
		for k := uint32(0); k < n; k++ {
			blobLen := br.readUint32()
			if br.err != nil {
				return nil, &FormatError{Reason: "reading value length", Err: br.err}
			}
			blob := make([]byte, blobLen)
			br.read(blob)
			if br.err != nil {
				return nil, &FormatError{Reason: "reading value bytes", Err: br.err}
			}
			if _, err := codec.Decode(blob); err != nil {
				return nil, &DecodeError{Index: len(values), Err: err}
			}
			values = append(values, blob)
		}
	}

	return &DoubleArray[V]{
		base:   base,
		check:  check,
		values: values,
		groups: groups,
		codec:  codec,
	}, nil
}

// byteWriter/byteReader accumulate the first error encountered, so call
// sites can write a whole dump without checking every field.

type byteWriter struct {
	w   io.Writer
	err error
}

func (bw *byteWriter) write(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

func (bw *byteWriter) writeUint16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	bw.write(buf[:])
}

func (bw *byteWriter) writeUint32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	bw.write(buf[:])
}

func (bw *byteWriter) writeInt32(v int32) { bw.writeUint32(uint32(v)) }

func (bw *byteWriter) writeUint64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	bw.write(buf[:])
}

type byteReader struct {
	r   io.Reader
	err error
}

func (br *byteReader) read(p []byte) {
	if br.err != nil {
		return
	}
	_, br.err = io.ReadFull(br.r, p)
}

func (br *byteReader) readUint16() uint16 {
	var buf [2]byte
	br.read(buf[:])
	return binary.LittleEndian.Uint16(buf[:])
}

func (br *byteReader) readUint32() uint32 {
	var buf [4]byte
	br.read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

func (br *byteReader) readInt32() int32 { return int32(br.readUint32()) }

func (br *byteReader) readUint64() uint64 {
	var buf [8]byte
	br.read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}
