package devotion

import "stopwatch/src/lib/upbeat"

// groupDigits writes n with an underscore every three digits, 1_000_000.
func groupDigits(n uint32) string {
	plain := upbeat.AppendDec(nil, n)
	out := make([]byte, 0, len(plain)+len(plain)/3)
	for i, c := range plain {
		if i > 0 && (len(plain)-i)%3 == 0 {
			out = append(out, '_')
		}
		out = append(out, c)
	}
	return string(out)
}

func plural(n uint32, unit string) string {
	s := string(upbeat.AppendDec(nil, n)) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}

// durationWords is the long form for the banner lines: "1 second".
func durationWords(us uint32) string {
	switch {
	case us != 0 && us%1_000_000 == 0:
		return plural(us/1_000_000, "second")
	case us != 0 && us%1000 == 0:
		return plural(us/1000, "millisecond")
	}
	return plural(us, "microsecond")
}

// durationShort is the tick form: "1s", "250ms", "10us".
func durationShort(us uint32) string {
	switch {
	case us != 0 && us%1_000_000 == 0:
		return string(upbeat.AppendDec(nil, us/1_000_000)) + "s"
	case us != 0 && us%1000 == 0:
		return string(upbeat.AppendDec(nil, us/1000)) + "ms"
	}
	return string(upbeat.AppendDec(nil, us)) + "us"
}
