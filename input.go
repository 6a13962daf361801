package reconform

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding identifies the physical representation of an Input.
type Encoding uint8

const (
	// EncodingUTF16 indexes the text by UTF-16 code units.
	EncodingUTF16 Encoding = iota
	// EncodingUTF8 indexes the text by bytes.
	EncodingUTF8
)

func (e Encoding) String() string {
	if e == EncodingUTF16 {
		return "utf16"
	}
	return "utf8"
}

// Input wraps one logical text in a single physical encoding. The two
// encodings of the same text are interchangeable: any match boundary
// produced through one of them, translated back to rune offsets, must
// equal the boundary produced through the other.
//
// An Input owns its encoded copy and is read-only after construction.
type Input struct {
	utf8  []byte
	utf16 []uint16
	// bool check is faster than slice != nil
	isUtf16 bool
}

// UTF16 returns text encoded as UTF-16 code units.
func UTF16(text string) Input {
	return Input{utf16: utf16.Encode([]rune(text)), isUtf16: true}
}

// UTF8 returns text encoded as UTF-8 bytes.
func UTF8(text string) Input {
	return Input{utf8: []byte(text)}
}

// Inputs returns both encodings of text, in a fixed order suitable for
// ranging over in checks.
func Inputs(text string) [2]Input {
	return [2]Input{UTF16(text), UTF8(text)}
}

// Encoding reports which representation the input carries.
func (in Input) Encoding() Encoding {
	if in.isUtf16 {
		return EncodingUTF16
	}
	return EncodingUTF8
}

// Len reports the length of the input in its own indexing: code units
// for UTF-16, bytes for UTF-8.
func (in Input) Len() int {
	if in.isUtf16 {
		return len(in.utf16)
	}
	return len(in.utf8)
}

// String decodes the input back to the logical text.
func (in Input) String() string {
	if in.isUtf16 {
		return string(utf16.Decode(in.utf16))
	}
	return string(in.utf8)
}

// RuneOffset translates an offset in the input's own indexing to a rune
// offset in the logical text. An offset inside a surrogate pair or a
// multi-byte sequence rounds to the rune containing it.
func (in Input) RuneOffset(native int) int {
	if in.isUtf16 {
		n := 0
		for i := 0; i < native && i < len(in.utf16); i++ {
			if utf16.IsSurrogate(rune(in.utf16[i])) && i+1 < len(in.utf16) && utf16.IsSurrogate(rune(in.utf16[i+1])) {
				i++
			}
			n++
		}
		return n
	}
	return utf8.RuneCount(in.utf8[:min(native, len(in.utf8))])
}

// nativeOffset translates a byte offset in the decoded text to the
// input's own indexing.
func (in Input) nativeOffset(byteOff int) int {
	if !in.isUtf16 {
		return byteOff
	}
	text := string(utf16.Decode(in.utf16))
	if byteOff > len(text) {
		byteOff = len(text)
	}
	return len(utf16.Encode([]rune(text[:byteOff])))
}
