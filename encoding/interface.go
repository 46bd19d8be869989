package encoding

import "github.com/julianedwards/tes3conv/tes3"

// Encoding is one on-disk representation of a plugin.
type Encoding interface {
	String() string
	// Extensions lists the lower case file extensions, without the
	// leading dot, that select this encoding for output.
	Extensions() []string
	// Signature is the first byte of any valid input in this encoding.
	Signature() byte
	Marshal(p *tes3.Plugin, compact bool) ([]byte, error)
	Unmarshal([]byte) (*tes3.Plugin, error)
}

type EncodingRegistry interface {
	AddNew(Encoding)
	Get(string) (Encoding, bool)
	Sniff([]byte) (Encoding, error)
	ForOutput(string) Encoding
	Recognized(string) bool
}
