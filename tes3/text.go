package tes3

import (
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// Strings inside plugins are Windows-1252. A payload is shown as text only
// when converting it back reproduces the original bytes exactly.

// U+00AD is a format character but ordinary Windows-1252 text.
const softHyphen = '\u00ad'

func decodeText(data []byte) (string, bool) {
	text, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil || !utf8.Valid(text) {
		return "", false
	}

	for _, r := range string(text) {
		if r == utf8.RuneError || !(unicode.IsGraphic(r) || r == softHyphen || r == '\t' || r == '\n' || r == '\r') {
			return "", false
		}
	}

	back, err := encodeText(string(text))
	if err != nil || string(back) != string(data) {
		return "", false
	}

	return string(text), true
}

func encodeText(text string) ([]byte, error) {
	out, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrapf(err, "'%s' is not representable in Windows-1252", text)
	}

	return out, nil
}
