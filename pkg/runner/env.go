package runner

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/genrun-dev/genrun/pkg/directive"
	"github.com/genrun-dev/genrun/pkg/module"
)

// Environment variables injected into every spawned directive.
const (
	EnvOS        = "GENRUN_OS"
	EnvModule    = "GENRUN_MODULE"
	EnvLine      = "GENRUN_LINE"
	EnvCharacter = "GENRUN_CHARACTER"
	EnvDir       = "GENRUN_DIR"

	// EnvDollar holds a literal $ for shells and tools that need to emit
	// one without triggering substitution.
	EnvDollar = "DOLLAR"
)

var derivedNames = []string{EnvOS, EnvModule, EnvLine, EnvCharacter, EnvDir, EnvDollar}

// deriveEnv builds the directive environment merged over the inherited one.
// Inherited variables stay unless one of the derived names overrides them.
func deriveEnv(base []string, mod module.Module, d directive.Directive) ([]string, error) {
	dir, err := mod.Dir()
	if err != nil {
		return nil, err
	}

	derived := map[string]string{
		EnvOS:        runtime.GOOS,
		EnvModule:    mod.Specifier,
		EnvLine:      strconv.Itoa(d.Line),
		EnvCharacter: strconv.Itoa(d.Character),
		EnvDir:       dir,
		EnvDollar:    "$",
	}

	env := make([]string, 0, len(base)+len(derived))
	for _, kv := range base {
		name, _, ok := strings.Cut(kv, "=")
		if ok {
			if _, overridden := derived[name]; overridden {
				continue
			}
		}
		env = append(env, kv)
	}
	for _, name := range derivedNames {
		env = append(env, name+"="+derived[name])
	}
	return env, nil
}
