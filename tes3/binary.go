package tes3

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

const (
	recordHeaderSize    = 16
	subrecordHeaderSize = 8

	// HEDR: version f32, flags u32, author [32]byte, description
	// [256]byte, record count u32.
	hedrSize        = 300
	hedrCountOffset = 296
	defaultVersion  = 1.3
)

// ErrBadSignature is returned by Load when the data does not start with a
// TES3 record.
var ErrBadSignature = errors.New("missing TES3 signature")

// Load decodes a binary plugin.
func Load(data []byte) (*Plugin, error) {
	if len(data) < tagSize || string(data[:tagSize]) != HeaderTag {
		return nil, ErrBadSignature
	}

	p := NewPlugin()
	for offset := 0; offset < len(data); {
		if len(data)-offset < recordHeaderSize {
			return nil, errors.Errorf("truncated record header at offset %d", offset)
		}

		r := &Record{
			Tag:    string(data[offset : offset+tagSize]),
			Unused: binary.LittleEndian.Uint32(data[offset+8:]),
			Flags:  binary.LittleEndian.Uint32(data[offset+12:]),
		}
		if err := validateTag(r.Tag); err != nil {
			return nil, errors.Wrapf(err, "record at offset %d", offset)
		}
		size := uint64(binary.LittleEndian.Uint32(data[offset+4:]))
		start := offset + recordHeaderSize
		if size > uint64(len(data)-start) {
			return nil, errors.Errorf("%s record at offset %d claims %d bytes, only %d remain", r.Tag, offset, size, len(data)-start)
		}
		end := start + int(size)

		subrecords, err := loadSubrecords(data[start:end], start)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s record at offset %d", r.Tag, offset)
		}
		r.Subrecords = subrecords

		p.Records = append(p.Records, r)
		offset = end
	}

	return p, nil
}

func loadSubrecords(data []byte, base int) ([]Subrecord, error) {
	var subrecords []Subrecord
	for offset := 0; offset < len(data); {
		if len(data)-offset < subrecordHeaderSize {
			return nil, errors.Errorf("truncated subrecord header at offset %d", base+offset)
		}

		tag := string(data[offset : offset+tagSize])
		if err := validateTag(tag); err != nil {
			return nil, errors.Wrapf(err, "subrecord at offset %d", base+offset)
		}
		size := uint64(binary.LittleEndian.Uint32(data[offset+4:]))
		start := offset + subrecordHeaderSize
		if size > uint64(len(data)-start) {
			return nil, errors.Errorf("%s subrecord at offset %d overruns its record", tag, base+offset)
		}
		end := start + int(size)

		subrecords = append(subrecords, Subrecord{Tag: tag, Data: clone(data[start:end])})
		offset = end
	}

	return subrecords, nil
}

// Bytes encodes the plugin in the binary format. A plugin without a TES3
// header gets a default one, and the header's record count is always
// written from the number of records that follow it. The plugin itself is
// not modified.
func (p *Plugin) Bytes() ([]byte, error) {
	header := p.Header()
	records := p.Records
	if header == nil {
		header = newHeader()
	} else {
		records = records[1:]
	}

	var buf bytes.Buffer
	if err := writeRecord(&buf, withRecordCount(header, len(records))); err != nil {
		return nil, errors.Wrap(err, "encoding header")
	}
	for idx, r := range records {
		if err := writeRecord(&buf, r); err != nil {
			return nil, errors.Wrapf(err, "encoding record %d (%s)", idx+1, r)
		}
	}

	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, r *Record) error {
	if err := validateTag(r.Tag); err != nil {
		return err
	}

	var size uint64
	for _, s := range r.Subrecords {
		if err := validateTag(s.Tag); err != nil {
			return errors.Wrap(err, "invalid subrecord")
		}
		if uint64(len(s.Data)) > math.MaxUint32 {
			return errors.Errorf("%s subrecord is too large (%d bytes)", s.Tag, len(s.Data))
		}
		size += subrecordHeaderSize + uint64(len(s.Data))
	}
	if size > math.MaxUint32 {
		return errors.Errorf("record is too large (%d bytes)", size)
	}

	var header [recordHeaderSize]byte
	copy(header[:], r.Tag)
	binary.LittleEndian.PutUint32(header[4:], uint32(size))
	binary.LittleEndian.PutUint32(header[8:], r.Unused)
	binary.LittleEndian.PutUint32(header[12:], r.Flags)
	buf.Write(header[:])

	for _, s := range r.Subrecords {
		var sub [subrecordHeaderSize]byte
		copy(sub[:], s.Tag)
		binary.LittleEndian.PutUint32(sub[4:], uint32(len(s.Data)))
		buf.Write(sub[:])
		buf.Write(s.Data)
	}

	return nil
}

func newHeader() *Record {
	hedr := make([]byte, hedrSize)
	binary.LittleEndian.PutUint32(hedr, math.Float32bits(defaultVersion))

	return &Record{
		Tag:        HeaderTag,
		Subrecords: []Subrecord{{Tag: "HEDR", Data: hedr}},
	}
}

// withRecordCount returns a copy of the header with the HEDR record count
// set to n.
func withRecordCount(header *Record, n int) *Record {
	out := *header
	out.Subrecords = make([]Subrecord, len(header.Subrecords))
	copy(out.Subrecords, header.Subrecords)

	for idx, s := range out.Subrecords {
		if s.Tag != "HEDR" || len(s.Data) != hedrSize {
			continue
		}
		data := clone(s.Data)
		binary.LittleEndian.PutUint32(data[hedrCountOffset:], uint32(n))
		out.Subrecords[idx].Data = data
		break
	}

	return &out
}

// RecordCount returns the record count stored in the header's HEDR
// subrecord.
func (p *Plugin) RecordCount() (uint32, bool) {
	header := p.Header()
	if header == nil {
		return 0, false
	}
	hedr, ok := header.Subrecord("HEDR")
	if !ok || len(hedr.Data) != hedrSize {
		return 0, false
	}

	return binary.LittleEndian.Uint32(hedr.Data[hedrCountOffset:]), true
}

func clone(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
