// Package tes3 reads and writes TES3 plugin containers (.esp, .esm,
// .omwaddon) at the record/subrecord level. It does not interpret the
// fields inside a subrecord.
package tes3

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

const (
	// HeaderTag is the type tag of the file header record. Every binary
	// plugin starts with it, which makes it the format signature.
	HeaderTag = "TES3"

	tagSize = 4
)

// Plugin is a decoded container: an ordered sequence of records.
type Plugin struct {
	Records []*Record
}

// Record is one top level unit of a plugin.
type Record struct {
	Tag        string
	Unused     uint32
	Flags      uint32
	Subrecords []Subrecord
}

// Subrecord is a tagged chunk of opaque record data.
type Subrecord struct {
	Tag  string
	Data []byte
}

// NewPlugin returns an empty plugin.
func NewPlugin() *Plugin { return &Plugin{} }

// Header returns the leading TES3 record, or nil when the plugin has none.
func (p *Plugin) Header() *Record {
	if len(p.Records) == 0 || p.Records[0].Tag != HeaderTag {
		return nil
	}

	return p.Records[0]
}

// Subrecord returns the first subrecord with the given tag.
func (r *Record) Subrecord(tag string) (Subrecord, bool) {
	for _, s := range r.Subrecords {
		if s.Tag == tag {
			return s, true
		}
	}

	return Subrecord{}, false
}

// Most records carry their identifier in NAME. Dialogue responses keep
// the response text there and their ID in INAM; landscape has no name and
// is identified by its grid coordinates.
var idTags = map[string]string{
	"INFO": "INAM",
	"LAND": "INTV",
}

// ID returns the identifier used to order records of the same type, or an
// empty string when the record has none.
func (r *Record) ID() string {
	tag, ok := idTags[r.Tag]
	if !ok {
		tag = "NAME"
	}

	if s, ok := r.Subrecord(tag); ok {
		return idString(s.Data)
	}

	return ""
}

func idString(data []byte) string {
	if text, ok := decodeText(trimNUL(data)); ok {
		return text
	}

	return hex.EncodeToString(data)
}

func trimNUL(data []byte) []byte {
	for len(data) > 0 && data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}

	return data
}

func validateTag(tag string) error {
	if len(tag) != tagSize {
		return errors.Errorf("tag %q must be exactly %d bytes", tag, tagSize)
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] < 0x20 || tag[i] > 0x7e {
			return errors.Errorf("tag %q must be printable ASCII", tag)
		}
	}

	return nil
}

func (r *Record) String() string {
	if id := r.ID(); id != "" {
		return r.Tag + " '" + id + "'"
	}

	return r.Tag
}
