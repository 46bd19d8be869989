package encode

import (
	"github.com/julianedwards/tes3conv/tes3"
	"github.com/pkg/errors"
	"github.com/tidwall/jsonc"
)

const TEXT = "json"

type textEncoding struct{}

func (e *textEncoding) String() string       { return TEXT }
func (e *textEncoding) Extensions() []string { return []string{"json"} }
func (e *textEncoding) Signature() byte      { return '[' }
func (e *textEncoding) Marshal(p *tes3.Plugin, compact bool) ([]byte, error) {
	return p.EncodeJSON(compact)
}

// Unmarshal accepts hand edited files: comments and trailing commas are
// stripped before decoding.
func (e *textEncoding) Unmarshal(data []byte) (*tes3.Plugin, error) {
	return tes3.DecodeJSON(jsonc.ToJSON(data))
}

const BINARY = "tes3"

type binaryEncoding struct{}

func (e *binaryEncoding) String() string { return BINARY }
func (e *binaryEncoding) Extensions() []string {
	return []string{"esm", "esp", "omwaddon", "tmp"}
}
func (e *binaryEncoding) Signature() byte { return tes3.HeaderTag[0] }

// Marshal ignores compact; the binary layout has no optional whitespace.
func (e *binaryEncoding) Marshal(p *tes3.Plugin, _ bool) ([]byte, error) {
	return p.Bytes()
}

func (e *binaryEncoding) Unmarshal(data []byte) (*tes3.Plugin, error) {
	p, err := tes3.Load(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return p, nil
}
