// Package stlexport writes a kernel solid's triangulation out as a
// binary STL file: an 80-byte header, a little-endian uint32 triangle
// count, then 50 bytes per triangle (a unit normal, three vertices, and
// a zero attribute-byte-count).
package stlexport

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/foundrycad/waffle-iron/kernel"
	"github.com/foundrycad/waffle-iron/sig"
)

const (
	headerSize       = 80
	bytesPerTriangle = 50
)

// Export triangulates handle through mesher and renders the result as a
// binary STL file.
func Export(ctx context.Context, mesher kernel.Mesher, handle kernel.SolidHandle, comment string) ([]byte, error) {
	triangles, err := mesher.Mesh(ctx, handle)
	if err != nil {
		return nil, err
	}
	return Encode(triangles, comment), nil
}

// Encode renders a pre-triangulated mesh as a binary STL file. comment is
// truncated (never padded with anything but zero bytes) to fit the fixed
// 80-byte header.
func Encode(triangles []kernel.Triangle, comment string) []byte {
	buf := new(bytes.Buffer)

	header := make([]byte, headerSize)
	copy(header, []byte(comment))
	buf.Write(header)

	binary.Write(buf, binary.LittleEndian, uint32(len(triangles)))

	for _, t := range triangles {
		writeVec3(buf, t.Normal)
		writeVec3(buf, t.A)
		writeVec3(buf, t.B)
		writeVec3(buf, t.C)
		binary.Write(buf, binary.LittleEndian, uint16(0)) // attribute byte count
	}

	return buf.Bytes()
}

func writeVec3(buf *bytes.Buffer, v sig.Vec3) {
	binary.Write(buf, binary.LittleEndian, float32(v.X))
	binary.Write(buf, binary.LittleEndian, float32(v.Y))
	binary.Write(buf, binary.LittleEndian, float32(v.Z))
}

// ExpectedSize returns the exact byte length Encode produces for n
// triangles; used by callers validating a round trip without decoding.
func ExpectedSize(n int) int {
	return headerSize + 4 + n*bytesPerTriangle
}
