package cachemon

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteText writes a markdown summary of s.
func WriteText(w io.Writer, s Summary) error {
	fmt.Fprintln(w, "## Boot")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- uart: %s\n", yesNo(s.UARTLive))
	fmt.Fprintf(w, "- greeted: %s\n", yesNo(s.Greeted))

	switch {
	case s.MMUOnline:
		fmt.Fprintln(w, "- mmu: online")
	case s.MMUError != "":
		fmt.Fprintf(w, "- mmu: **%s**\n", s.MMUError)
	default:
		fmt.Fprintln(w, "- mmu: -")
	}

	fmt.Fprintln(w)

	if len(s.Delays) > 0 {
		fmt.Fprintln(w, "| Delay | Source | Result |")
		fmt.Fprintln(w, "|-------|--------|--------|")

		for _, d := range s.Delays {
			result := "OK"
			if !d.OK {
				result = "unfinished"
			}

			fmt.Fprintf(w, "| %s | %s | %s |\n", d.Amount, d.Source, result)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Cache benchmark")
	fmt.Fprintln(w)

	if s.BenchmarkSkipped {
		fmt.Fprintln(w, "Skipped, no memory map.")

		return nil
	}

	if len(s.Regions) > 0 {
		fmt.Fprintln(w, "| Region | Virtual | Physical | Time |")
		fmt.Fprintln(w, "|--------|---------|----------|------|")

		for _, r := range s.Regions {
			elapsed := "-"
			if r.Measured {
				elapsed = fmt.Sprintf("%dms", r.Ms)
			}

			fmt.Fprintf(w, "| %s | 0x%x | 0x%x | %s |\n", r.Name, r.Virtual, r.Physical, elapsed)
		}

		fmt.Fprintln(w)
	}

	switch {
	case s.Complete():
		direction := "faster"
		if s.Slower {
			direction = "slower"
		}

		fmt.Fprintf(w, "With caching: **%d%% %s**\n", *s.SpeedupPercent, direction)
	case s.Diagnostic:
		fmt.Fprintln(w, "The firmware could not compute a result.")
	default:
		fmt.Fprintln(w, "No result.")
	}

	return nil
}

// WriteJSON writes s as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
