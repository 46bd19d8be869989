package encode

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/julianedwards/tes3conv/encoding"
	"github.com/pkg/errors"
)

// ErrUnrecognizedFormat is returned by Sniff when the input does not start
// with the signature byte of any registered encoding.
var ErrUnrecognizedFormat = errors.New("unrecognized input format")

var globalRegistry = newDefaultRegistry()

func GetGlobalRegistry() *encodingRegistry { return globalRegistry }

type encodingRegistry struct {
	mu         sync.RWMutex
	registry   map[string]encoding.Encoding
	extensions map[string]encoding.Encoding
	ordered    []encoding.Encoding
	fallback   string
}

func NewEncodingRegistry() *encodingRegistry {
	return &encodingRegistry{
		registry:   map[string]encoding.Encoding{},
		extensions: map[string]encoding.Encoding{},
		fallback:   TEXT,
	}
}

func newDefaultRegistry() *encodingRegistry {
	r := NewEncodingRegistry()
	r.AddNew(&textEncoding{})
	r.AddNew(&binaryEncoding{})

	return r
}

func (r *encodingRegistry) AddNew(e encoding.Encoding) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.registry[e.String()]; ok {
		return
	}

	r.registry[e.String()] = e
	r.ordered = append(r.ordered, e)
	for _, ext := range e.Extensions() {
		if _, ok := r.extensions[ext]; !ok {
			r.extensions[ext] = e
		}
	}
}

func (r *encodingRegistry) Get(name string) (encoding.Encoding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.registry[name]
	return e, ok
}

// Sniff picks the encoding to decode data with from its first byte.
func (r *encodingRegistry) Sniff(data []byte) (encoding.Encoding, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrUnrecognizedFormat, "input is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.ordered {
		if e.Signature() == data[0] {
			return e, nil
		}
	}

	return nil, errors.Wrapf(ErrUnrecognizedFormat, "unexpected leading byte %q", data[0])
}

// ForOutput picks the encoding to write path with. Extensions registered
// by an encoding select it; anything else, including the empty path used
// for stdout, gets the text encoding.
func (r *encodingRegistry) ForOutput(path string) encoding.Encoding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.extensions[Extension(path)]; ok {
		return e
	}

	return r.registry[r.fallback]
}

// Recognized reports whether path has an extension registered by any
// encoding.
func (r *encodingRegistry) Recognized(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.extensions[Extension(path)]
	return ok
}

// Extension returns the lower case extension of path without the dot.
func Extension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
