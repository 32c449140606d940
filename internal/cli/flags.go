package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a closed set of strings, so
// invalid quadrant/complexity/energy spellings fail at flag parse time
// instead of deep inside the engine.
type enumValue struct {
	target   *string
	typeName string
	allowed  map[string]bool
}

func newEnumValue(target *string, def, typeName string, allowed map[string]bool) *enumValue {
	*target = def
	return &enumValue{target: target, typeName: typeName, allowed: allowed}
}

func (e *enumValue) String() string { return *e.target }

func (e *enumValue) Set(v string) error {
	if !e.allowed[v] {
		return fmt.Errorf("must be one of: %s", strings.Join(e.choices(), ", "))
	}
	*e.target = v
	return nil
}

func (e *enumValue) Type() string { return e.typeName }

func (e *enumValue) choices() []string {
	out := make([]string, 0, len(e.allowed))
	for v := range e.allowed {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var _ pflag.Value = (*enumValue)(nil)
