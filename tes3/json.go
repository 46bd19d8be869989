package tes3

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

type jsonRecord struct {
	Type       string          `json:"type"`
	Flags      uint32          `json:"flags,omitempty"`
	Unused     uint32          `json:"unused,omitempty"`
	Subrecords []jsonSubrecord `json:"subrecords"`
}

// A subrecord payload is written as exactly one of these keys.
type jsonSubrecord struct {
	Tag     string  `json:"tag"`
	ZString *string `json:"zstring,omitempty"`
	String  *string `json:"string,omitempty"`
	Hex     *string `json:"hex,omitempty"`
}

// EncodeJSON writes the plugin as a JSON array of records. Unless compact
// is set the output is indented by two spaces.
func (p *Plugin) EncodeJSON(compact bool) ([]byte, error) {
	records := make([]jsonRecord, 0, len(p.Records))
	for idx, r := range p.Records {
		jr, err := toJSONRecord(r)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", idx)
		}
		records = append(records, jr)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(records); err != nil {
		return nil, errors.Wrap(err, "encoding records as JSON")
	}

	out := buf.Bytes()
	if compact {
		out = bytes.TrimSuffix(out, []byte("\n"))
	}

	return out, nil
}

// MarshalJSON implements json.Marshaler using the compact form.
func (p *Plugin) MarshalJSON() ([]byte, error) { return p.EncodeJSON(true) }

// DecodeJSON parses the array-of-records form written by EncodeJSON.
func DecodeJSON(data []byte) (*Plugin, error) {
	p := NewPlugin()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Plugin) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []jsonRecord
	if err := dec.Decode(&records); err != nil {
		return errors.Wrap(err, "decoding JSON records")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON records")
	}

	p.Records = make([]*Record, 0, len(records))
	for idx, jr := range records {
		r, err := fromJSONRecord(jr)
		if err != nil {
			return errors.Wrapf(err, "record %d", idx)
		}
		p.Records = append(p.Records, r)
	}

	return nil
}

func toJSONRecord(r *Record) (jsonRecord, error) {
	if err := validateTag(r.Tag); err != nil {
		return jsonRecord{}, err
	}

	out := jsonRecord{
		Type:       r.Tag,
		Flags:      r.Flags,
		Unused:     r.Unused,
		Subrecords: make([]jsonSubrecord, 0, len(r.Subrecords)),
	}
	for idx, s := range r.Subrecords {
		if err := validateTag(s.Tag); err != nil {
			return jsonRecord{}, errors.Wrapf(err, "%s subrecord %d", r.Tag, idx)
		}
		out.Subrecords = append(out.Subrecords, toJSONSubrecord(s))
	}

	return out, nil
}

func toJSONSubrecord(s Subrecord) jsonSubrecord {
	out := jsonSubrecord{Tag: s.Tag}

	if n := len(s.Data); n > 0 && s.Data[n-1] == 0 {
		if text, ok := decodeText(s.Data[:n-1]); ok {
			out.ZString = &text
			return out
		}
	}
	if len(s.Data) > 0 {
		if text, ok := decodeText(s.Data); ok {
			out.String = &text
			return out
		}
	}

	encoded := hex.EncodeToString(s.Data)
	out.Hex = &encoded
	return out
}

func fromJSONRecord(jr jsonRecord) (*Record, error) {
	if err := validateTag(jr.Type); err != nil {
		return nil, err
	}

	r := &Record{Tag: jr.Type, Flags: jr.Flags, Unused: jr.Unused}
	for idx, js := range jr.Subrecords {
		s, err := fromJSONSubrecord(js)
		if err != nil {
			return nil, errors.Wrapf(err, "%s subrecord %d", jr.Type, idx)
		}
		r.Subrecords = append(r.Subrecords, s)
	}

	return r, nil
}

func fromJSONSubrecord(js jsonSubrecord) (Subrecord, error) {
	if err := validateTag(js.Tag); err != nil {
		return Subrecord{}, err
	}

	var (
		payloads int
		data     []byte
		err      error
	)
	if js.ZString != nil {
		payloads++
		data, err = encodeText(*js.ZString)
		data = append(data, 0)
	}
	if js.String != nil {
		payloads++
		data, err = encodeText(*js.String)
	}
	if js.Hex != nil {
		payloads++
		data, err = hex.DecodeString(*js.Hex)
	}

	switch {
	case payloads == 0:
		return Subrecord{}, errors.Errorf("%s has no payload", js.Tag)
	case payloads > 1:
		return Subrecord{}, errors.Errorf("%s has more than one payload", js.Tag)
	case err != nil:
		return Subrecord{}, errors.Wrapf(err, "decoding %s payload", js.Tag)
	}

	return Subrecord{Tag: js.Tag, Data: clone(data)}, nil
}
