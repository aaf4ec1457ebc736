package completion

import (
	"strconv"
	"strings"
)

var timeUnits = []string{"minutes", "hours", "days", "weeks", "months", "years"}

func registerBuiltins(r *Registry) {
	r.RegisterAsync("nothing", func(_ *Context) ([]string, error) {
		return []string{}, nil
	})
	r.RegisterAsync("range", func(ctx *Context) ([]string, error) {
		if !ctx.HasConfig {
			return []string{}, nil
		}
		start, end := parseRange(ctx.Config)
		return rangeValues(start, end), nil
	})
	r.RegisterStatic("timeunits", timeUnits)
}

// parseRange reads "N" as 0..N and "A-B" as A..B. Anything unparsable or
// outside the 32-bit range counts as 0.
func parseRange(config string) (int, int) {
	parts := strings.Split(config, "-")
	// trailing empty pieces do not count, so "5-" is the same as "5"
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) != 2 {
		return 0, atoiOrZero(parts[0])
	}
	return atoiOrZero(parts[0]), atoiOrZero(parts[1])
}

func atoiOrZero(s string) int {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

func rangeValues(start, end int) []string {
	if end < start {
		return []string{}
	}
	values := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		values = append(values, strconv.Itoa(i))
	}
	return values
}
