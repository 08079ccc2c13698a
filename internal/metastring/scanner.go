package metastring

import "strings"

const (
	dateLen       = len("2006-01-02")
	simpleTimeLen = len("15-04")
)

// segments is the result of splitting a filename into its three regions.
type segments struct {
	date  string
	time  string
	pairs string
}

// scan splits input into the optional date, optional time and pairs regions.
//
//	DATE  DDDD-DD-DD at offset 0
//	SEP   one '-' or '_', consumed whenever present
//	TIME  DD-DD followed by any run of bytes other than '_' and '.'
//	'_'   optional
//	PAIRS everything up to the first '.'
//
// Every region may be empty; scan never fails.
func scan(input string) segments {
	var seg segments
	pos := 0

	if n := matchDate(input); n > 0 {
		seg.date = input[:n]
		pos = n
	}

	if pos < len(input) && (input[pos] == '-' || input[pos] == '_') {
		pos++
	}

	if n := matchTime(input[pos:]); n > 0 {
		seg.time = input[pos : pos+n]
		pos += n
	}

	if pos < len(input) && input[pos] == '_' {
		pos++
	}

	rest := input[pos:]
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		rest = rest[:dot]
	}
	seg.pairs = rest
	return seg
}

// matchDate returns the length of a DDDD-DD-DD prefix, or 0.
func matchDate(s string) int {
	if len(s) < dateLen {
		return 0
	}
	if !digits(s[0:4]) || s[4] != '-' || !digits(s[5:7]) || s[7] != '-' || !digits(s[8:10]) {
		return 0
	}
	return dateLen
}

// matchTime returns the length of a DD-DD prefix plus its extension up to the
// next '_' or '.', or 0 when s does not start with DD-DD.
func matchTime(s string) int {
	if len(s) < simpleTimeLen {
		return 0
	}
	if !digits(s[0:2]) || s[2] != '-' || !digits(s[3:5]) {
		return 0
	}
	n := simpleTimeLen
	for n < len(s) && s[n] != '_' && s[n] != '.' {
		n++
	}
	return n
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// normalizeTime turns a simple HH-MM token into HH:MM and leaves extended
// tokens untouched.
func normalizeTime(raw string) string {
	if len(raw) == simpleTimeLen {
		return strings.ReplaceAll(raw, "-", ":")
	}
	return raw
}

type pair struct {
	key   string
	value string
}

// splitPairs validates every '_'-separated token before returning any of
// them, so a malformed segment yields no pairs at all.
func splitPairs(input, segment string) ([]pair, error) {
	tokens := strings.Split(segment, "_")
	pairs := make([]pair, 0, len(tokens))
	for i, tok := range tokens {
		var kind error
		switch strings.Count(tok, "-") {
		case 0:
			kind = ErrMissingSeparator
		case 1:
			key, value, _ := strings.Cut(tok, "-")
			if key == "" && value == "" {
				kind = ErrBlankPair
				break
			}
			pairs = append(pairs, pair{key: key, value: value})
		default:
			kind = ErrMultipleSeparators
		}
		if kind != nil {
			return nil, &ParseError{Input: input, Token: tok, Index: i, Err: kind}
		}
	}
	return pairs, nil
}
