package encode

import (
	"testing"

	"github.com/julianedwards/tes3conv/encoding"
	"github.com/julianedwards/tes3conv/tes3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryImplementation(t *testing.T) {
	assert.Implements(t, (*encoding.EncodingRegistry)(nil), &encodingRegistry{})
	assert.Implements(t, (*encoding.Encoding)(nil), &textEncoding{})
	assert.Implements(t, (*encoding.Encoding)(nil), &binaryEncoding{})
}

func TestSniff(t *testing.T) {
	registry := GetGlobalRegistry()

	e, err := registry.Sniff([]byte(`[{"type":"TES3"}]`))
	require.NoError(t, err)
	assert.Equal(t, TEXT, e.String())

	e, err = registry.Sniff([]byte("TES3\x00\x00"))
	require.NoError(t, err)
	assert.Equal(t, BINARY, e.String())

	for name, input := range map[string][]byte{
		"Empty":  nil,
		"Object": []byte(`{"type":"TES3"}`),
		"Space":  []byte(" []"),
		"Lower":  []byte("tes3"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := registry.Sniff(input)
			assert.True(t, errors.Is(err, ErrUnrecognizedFormat))
		})
	}
}

func TestForOutput(t *testing.T) {
	registry := GetGlobalRegistry()

	for path, expected := range map[string]string{
		"":                  TEXT,
		"plugin.json":       TEXT,
		"plugin.JSON":       TEXT,
		"plugin.esp":        BINARY,
		"Morrowind.ESM":     BINARY,
		"mod.omwaddon":      BINARY,
		"save/quick.tmp":    BINARY,
		"dir.esp/notes.txt": TEXT,
	} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, expected, registry.ForOutput(path).String())
		})
	}
}

func TestRecognized(t *testing.T) {
	registry := GetGlobalRegistry()

	for _, path := range []string{"a.json", "a.Json", "a.esp", "a.ESM", "a.omwaddon", "a.tmp"} {
		assert.True(t, registry.Recognized(path), path)
	}
	for _, path := range []string{"", "a.txt", "a", "json", "a.esp.bak"} {
		assert.False(t, registry.Recognized(path), path)
	}
}

func TestAddNewKeepsFirst(t *testing.T) {
	registry := NewEncodingRegistry()
	first := &textEncoding{}
	registry.AddNew(first)
	registry.AddNew(&textEncoding{})

	e, ok := registry.Get(TEXT)
	require.True(t, ok)
	assert.Same(t, first, e)

	_, ok = registry.Get(BINARY)
	assert.False(t, ok)
}

func TestTextEncodingAcceptsComments(t *testing.T) {
	e, ok := GetGlobalRegistry().Get(TEXT)
	require.True(t, ok)

	p, err := e.Unmarshal([]byte(`[
  // the player's favourite
  {"type": "NPC_", "subrecords": [{"tag": "NAME", "zstring": "fargoth"},],},
]`))
	require.NoError(t, err)
	require.Len(t, p.Records, 1)
	assert.Equal(t, "fargoth", p.Records[0].ID())
}

func TestEncodingsRoundTrip(t *testing.T) {
	p := &tes3.Plugin{Records: []*tes3.Record{{
		Tag:        "NPC_",
		Subrecords: []tes3.Subrecord{{Tag: "NAME", Data: []byte("fargoth\x00")}},
	}}}

	text, _ := GetGlobalRegistry().Get(TEXT)
	binary, _ := GetGlobalRegistry().Get(BINARY)

	data, err := binary.Marshal(p, true)
	require.NoError(t, err)
	fromBinary, err := binary.Unmarshal(data)
	require.NoError(t, err)

	data, err = text.Marshal(fromBinary, false)
	require.NoError(t, err)
	fromText, err := text.Unmarshal(data)
	require.NoError(t, err)

	require.Len(t, fromText.Records, 2)
	assert.Equal(t, tes3.HeaderTag, fromText.Records[0].Tag)
	assert.Equal(t, p.Records[0], fromText.Records[1])
}

func TestBinaryUnmarshalError(t *testing.T) {
	binary, _ := GetGlobalRegistry().Get(BINARY)
	_, err := binary.Unmarshal([]byte("TES"))
	assert.True(t, errors.Is(err, tes3.ErrBadSignature))
}
