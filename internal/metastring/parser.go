package metastring

// Option configures a single Parse call.
type Option func(*options)

type options struct {
	warn func(Warning)
}

// WithWarningHandler registers fn to receive reserved-key overwrite warnings.
// fn runs synchronously on the caller's goroutine, once per overwrite.
func WithWarningHandler(fn func(Warning)) Option {
	return func(o *options) {
		if fn != nil {
			o.warn = fn
		}
	}
}

// Parse extracts date, time and key-value pairs from a filename such as
//
//	2019-04-25-11-30_run-2_reactor-3_rep-a.tif
//
// The returned map always holds the input under rstr. Text after the first
// '.' is ignored. Malformed pairs fail the whole call with a *ParseError.
func Parse(input string, opts ...Option) (Metadata, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	seg := scan(input)

	var pairs []pair
	if seg.pairs != "" {
		var err error
		pairs, err = splitPairs(input, seg.pairs)
		if err != nil {
			return nil, err
		}
	}

	md := Metadata{KeyRaw: input}
	if seg.date != "" {
		md[KeyDate] = seg.date
	}
	if seg.time != "" {
		md[KeyTime] = normalizeTime(seg.time)
	}

	for _, p := range pairs {
		if IsReserved(p.key) && o.warn != nil {
			prev, had := md[p.key]
			o.warn(Warning{
				Input:       input,
				Key:         p.key,
				Previous:    prev,
				Value:       p.value,
				HadPrevious: had,
			})
		}
		md[p.key] = p.value
	}
	return md, nil
}

// ParseWithWarnings is Parse with the warnings collected into a slice.
func ParseWithWarnings(input string) (Metadata, []Warning, error) {
	var warnings []Warning
	md, err := Parse(input, WithWarningHandler(func(w Warning) {
		warnings = append(warnings, w)
	}))
	if err != nil {
		return nil, nil, err
	}
	return md, warnings, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) Metadata {
	md, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return md
}
