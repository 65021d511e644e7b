package table

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/juju/errors"
	"github.com/vmihailenco/msgpack"
	"lukechampine.com/uint128"
)

// Binary layout (big endian):
//
//	magic    "IPLT"
//	version  uint16
//	widths   uint8 ipv4 bound, uint8 ipv6 bound, uint8 index, uint8 reserved
//	counts   uint32 ipv4 ranges, uint32 ipv6 ranges, uint32 strings length
//	ipv4     bounds, then triples
//	ipv6     bounds, then triples
//	strings  msgpack encoded string tables
//	sha256   of everything above
const (
	TableMagic   = "IPLT"
	TableVersion = uint16(1)

	ipv4BoundWidth = 4
	ipv6BoundWidth = 16
	indexWidth     = 4
	tripleWidth    = 3 * indexWidth

	headerSize   = len(TableMagic) + 2 + 4 + 3*4
	checksumSize = sha256.Size
)

type stringTables struct {
	Countries []string `msgpack:"countries"`
	Provinces []string `msgpack:"provinces"`
	Cities    []string `msgpack:"cities"`
}

// MarshalBinary serializes the table into a versioned artifact.
func (t *Table) MarshalBinary() ([]byte, error) {
	strs, err := msgpack.Marshal(&stringTables{
		Countries: t.Countries,
		Provinces: t.Provinces,
		Cities:    t.Cities,
	})
	if err != nil {
		return nil, errors.Annotate(err, "cannot encode string tables")
	}

	size := headerSize +
		len(t.IPv4Bounds)*(ipv4BoundWidth+tripleWidth) +
		len(t.IPv6Bounds)*(ipv6BoundWidth+tripleWidth) +
		len(strs) + checksumSize
	buf := make([]byte, 0, size)

	buf = append(buf, TableMagic...)
	buf = binary.BigEndian.AppendUint16(buf, TableVersion)
	buf = append(buf, ipv4BoundWidth, ipv6BoundWidth, indexWidth, 0)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(t.IPv4Bounds)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(t.IPv6Bounds)))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(strs)))

	for _, v := range t.IPv4Bounds {
		buf = binary.BigEndian.AppendUint32(buf, v)
	}

	buf = appendTriples(buf, t.IPv4Triples)

	var raw [ipv6BoundWidth]byte

	for _, v := range t.IPv6Bounds {
		v.PutBytesBE(raw[:])
		buf = append(buf, raw[:]...)
	}

	buf = appendTriples(buf, t.IPv6Triples)
	buf = append(buf, strs...)

	checksum := sha256.Sum256(buf)

	return append(buf, checksum[:]...), nil
}

// UnmarshalTable restores a table from its artifact. Any mismatch in
// schema, sizes, checksum or table invariants is reported as
// ErrCorruptedTable.
func UnmarshalTable(data []byte) (*Table, error) {
	if len(data) < headerSize+checksumSize {
		return nil, errors.Annotatef(ErrCorruptedTable, "artifact is too short: %d bytes", len(data))
	}

	payload := data[:len(data)-checksumSize]
	checksum := sha256.Sum256(payload)

	if !bytes.Equal(checksum[:], data[len(payload):]) {
		return nil, errors.Annotate(ErrCorruptedTable, "checksum mismatch")
	}

	if string(payload[:len(TableMagic)]) != TableMagic {
		return nil, errors.Annotate(ErrCorruptedTable, "unknown magic")
	}

	header := payload[len(TableMagic):headerSize]

	if version := binary.BigEndian.Uint16(header); version != TableVersion {
		return nil, errors.Annotatef(ErrCorruptedTable, "unsupported version %d", version)
	}

	if header[2] != ipv4BoundWidth || header[3] != ipv6BoundWidth || header[4] != indexWidth {
		return nil, errors.Annotatef(ErrCorruptedTable, "unsupported element widths %d/%d/%d",
			header[2], header[3], header[4])
	}

	ipv4Count := int(binary.BigEndian.Uint32(header[6:]))
	ipv6Count := int(binary.BigEndian.Uint32(header[10:]))
	stringsSize := int(binary.BigEndian.Uint32(header[14:]))

	expectedSize := headerSize +
		ipv4Count*(ipv4BoundWidth+tripleWidth) +
		ipv6Count*(ipv6BoundWidth+tripleWidth) +
		stringsSize
	if expectedSize != len(payload) {
		return nil, errors.Annotatef(ErrCorruptedTable, "expected %d bytes, got %d", expectedSize, len(payload))
	}

	t := &Table{
		IPv4Bounds:  make([]uint32, ipv4Count),
		IPv4Triples: make([]Triple, ipv4Count),
		IPv6Bounds:  make([]uint128.Uint128, ipv6Count),
		IPv6Triples: make([]Triple, ipv6Count),
	}
	body := payload[headerSize:]

	for i := range t.IPv4Bounds {
		t.IPv4Bounds[i] = binary.BigEndian.Uint32(body)
		body = body[ipv4BoundWidth:]
	}

	body = readTriples(body, t.IPv4Triples)

	for i := range t.IPv6Bounds {
		t.IPv6Bounds[i] = uint128.FromBytesBE(body[:ipv6BoundWidth])
		body = body[ipv6BoundWidth:]
	}

	body = readTriples(body, t.IPv6Triples)

	strs := stringTables{}
	if err := msgpack.Unmarshal(body, &strs); err != nil {
		return nil, errors.Annotate(ErrCorruptedTable, "cannot decode string tables: "+err.Error())
	}

	t.Countries = strs.Countries
	t.Provinces = strs.Provinces
	t.Cities = strs.Cities

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func appendTriples(buf []byte, triples []Triple) []byte {
	for _, v := range triples {
		buf = binary.BigEndian.AppendUint32(buf, v[0])
		buf = binary.BigEndian.AppendUint32(buf, v[1])
		buf = binary.BigEndian.AppendUint32(buf, v[2])
	}

	return buf
}

func readTriples(body []byte, triples []Triple) []byte {
	for i := range triples {
		triples[i] = Triple{
			binary.BigEndian.Uint32(body),
			binary.BigEndian.Uint32(body[indexWidth:]),
			binary.BigEndian.Uint32(body[2*indexWidth:]),
		}
		body = body[tripleWidth:]
	}

	return body
}
