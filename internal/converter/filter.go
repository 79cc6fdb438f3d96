package converter

import (
	"strings"

	"github.com/ginjaninja78/cfimp/internal/config"
)

// Include decides whether a data row is converted. It looks only at the
// row's own index and text, never at other rows.
//
// RULES (all must pass):
//   - offset: rows before the 1-based offset are excluded
//   - limit:  at most "limit" rows counted from offset are included, so
//             offset=3 limit=2 keeps rows 3 and 4
//   - skiprows: a row containing any term is excluded; with a leading "!"
//             a row containing none of the terms is excluded instead
func Include(rowIndex int, rawLine string, cfg *config.RunConfig) bool {
	inWindow := withinWindow(rowIndex, cfg)
	skipped := skippedByContent(rawLine, cfg.SkipRows)
	return inWindow && !skipped
}

func withinWindow(rowIndex int, cfg *config.RunConfig) bool {
	first := 1
	if cfg.Offset > 1 {
		first = cfg.Offset
	}
	if rowIndex < first {
		return false
	}
	if cfg.HasLimit && rowIndex > first+cfg.Limit-1 {
		return false
	}
	return true
}

func skippedByContent(rawLine string, rules config.SkipRules) bool {
	if !rules.Active() {
		return false
	}

	found := false
	for _, term := range rules.Terms {
		if strings.Contains(rawLine, term) {
			found = true
			break
		}
	}

	return found != rules.Negate
}
