package canonical

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oerc-s/primordia/pkg/perrors"
)

// Encode serializes v to its canonical UTF-8 byte string: no whitespace,
// map keys sorted by code point, integers in shortest decimal form,
// strings escaped per the control-character and backslash/quote rules.
// Floats and out-of-range integers are rejected with a *perrors.Error of
// kind KindCanonical.
func Encode(v Value) ([]byte, error) {
	var sb strings.Builder
	if err := encodeInto(&sb, v); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func encodeInto(sb *strings.Builder, v Value) error {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
		return nil
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
		return nil
	case KindInt:
		if err := validateInt(v.i); err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(v.i, 10))
		return nil
	case KindString:
		encodeString(sb, v.s)
		return nil
	case KindArray:
		sb.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := encodeInto(sb, el); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
		return nil
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys) // Go string comparison is byte-wise, which agrees
		// with Unicode code-point order for valid UTF-8.
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(',')
			}
			encodeString(sb, k)
			sb.WriteByte(':')
			if err := encodeInto(sb, v.m[k]); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
		return nil
	default:
		return perrors.New(perrors.KindCanonical, "type not supported")
	}
}

func encodeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)
				const hex = "0123456789abcdef"
				sb.WriteByte(hex[(r>>12)&0xf])
				sb.WriteByte(hex[(r>>8)&0xf])
				sb.WriteByte(hex[(r>>4)&0xf])
				sb.WriteByte(hex[r&0xf])
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}
