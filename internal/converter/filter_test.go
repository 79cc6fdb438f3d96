package converter

import (
	"reflect"
	"testing"

	"github.com/ginjaninja78/cfimp/internal/config"
)

// included returns the 1-based indexes of rows 1..n that pass the filter.
func included(cfg *config.RunConfig, lines []string) []int {
	var out []int
	for i, line := range lines {
		if Include(i+1, line, cfg) {
			out = append(out, i+1)
		}
	}
	return out
}

func TestInclude_Window(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e", "f"}

	tests := []struct {
		name     string
		offset   int
		limit    int
		hasLimit bool
		want     []int
	}{
		{"unset", 0, 0, false, []int{1, 2, 3, 4, 5, 6}},
		{"offset and limit", 3, 2, true, []int{3, 4}},
		{"offset only", 5, 0, false, []int{5, 6}},
		{"limit only", 0, 2, true, []int{1, 2}},
		{"offset one", 1, 3, true, []int{1, 2, 3}},
		{"limit zero", 0, 0, true, nil},
		{"past the end", 10, 2, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Offset, cfg.Limit, cfg.HasLimit = tt.offset, tt.limit, tt.hasLimit
			if got := included(cfg, lines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("included = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInclude_SkipRows(t *testing.T) {
	lines := []string{"foo,1", "bar,2", "food,3", "baz,4"}

	tests := []struct {
		rules string
		want  []int
	}{
		{"foo", []int{2, 4}},
		{"!foo", []int{1, 3}},
		{"foo,baz", []int{2}},
		{"!bar,baz", []int{2, 4}},
		{"FOO", []int{1, 2, 3, 4}},
		{",,", []int{1, 2, 3, 4}},
		{"o,1", []int{2, 4}},
	}
	for _, tt := range tests {
		cfg := testConfig()
		cfg.SkipRows = config.ParseSkipRules(tt.rules, ",")
		if got := included(cfg, lines); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("skiprows %q: included = %v, want %v", tt.rules, got, tt.want)
		}
	}
}

func TestInclude_Combined(t *testing.T) {
	cfg := testConfig()
	cfg.Offset, cfg.Limit, cfg.HasLimit = 2, 3, true
	cfg.SkipRows = config.ParseSkipRules("skip", ",")

	lines := []string{"a", "skip b", "c", "d", "e"}
	if got, want := included(cfg, lines), []int{3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("included = %v, want %v", got, want)
	}
}
