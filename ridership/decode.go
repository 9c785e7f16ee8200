package ridership

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// Encoding names the character set a file was decoded with.
type Encoding string

const (
	UTF8  Encoding = "utf-8"
	CP949 Encoding = "cp949"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw upload bytes into text. UTF-8 is tried first; anything that
// is not valid UTF-8 is decoded as CP949 (Korean Windows codepage, a superset
// of EUC-KR). The CP949 decoder substitutes U+FFFD for byte sequences it cannot
// map, so any replacement character in its output means the file is neither.
func Decode(data []byte) (string, Encoding, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), UTF8, nil
	}

	out, err := korean.EUCKR.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", &DecodeError{Err: fmt.Errorf("%w: %v", ErrUndecodable, err)}
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", "", &DecodeError{Err: fmt.Errorf("%w: unmappable byte sequence", ErrUndecodable)}
	}
	return string(out), CP949, nil
}
