package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"reqlock/internal/core"
	"reqlock/internal/ports"
	"reqlock/internal/types"
)

type PyProjectFileAdapter struct{}

func NewPyProjectFileAdapter() PyProjectFileAdapter {
	return PyProjectFileAdapter{}
}

// pyprojectFile mirrors the tables this adapter reads: PEP 621
// project.dependencies and the Poetry dependency tables.
type pyprojectFile struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]interface{} `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

func (a PyProjectFileAdapter) Load(path string) ([]types.Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("pyproject file not found").
			WithCause(err)
	}
	var project pyprojectFile
	if err := toml.Unmarshal(data, &project); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse pyproject toml").
			WithCause(err)
	}

	// PEP 508 dependency strings share the requirements line grammar,
	// so they run through the same parser.
	var lines []string
	lines = append(lines, project.Project.Dependencies...)
	for _, group := range project.Project.OptionalDependencies {
		lines = append(lines, group...)
	}
	for name, value := range project.Tool.Poetry.Dependencies {
		if strings.EqualFold(name, "python") {
			continue
		}
		rendered, ok := renderPoetryConstraint(name, value)
		if !ok {
			continue
		}
		lines = append(lines, rendered)
	}

	manifest := core.ParseManifest([]byte(strings.Join(lines, "\n")), path, types.DependencyTypePip)
	for _, line := range manifest.Lines {
		if line.Kind == types.LineKindInvalid {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid dependency entry %q: %s", line.Raw, line.ParseError))
		}
	}
	return manifest.Requirements(), nil
}

// renderPoetryConstraint converts a Poetry constraint value to the
// requirements spelling. Caret and tilde ranges become lower bounds;
// exact versions become pins.
func renderPoetryConstraint(name string, value interface{}) (string, bool) {
	version := ""
	switch v := value.(type) {
	case string:
		version = v
	case map[string]interface{}:
		if nested, ok := v["version"].(string); ok {
			version = nested
		}
	}
	version = strings.TrimSpace(version)
	if version == "" || version == "*" {
		return name, true
	}
	if strings.HasPrefix(version, "^") || strings.HasPrefix(version, "~") {
		return fmt.Sprintf("%s>=%s", name, strings.TrimLeft(version, "^~")), true
	}
	if strings.ContainsAny(version, "<>=!~") {
		return name + version, true
	}
	return fmt.Sprintf("%s==%s", name, version), true
}

var _ ports.PyProjectPort = PyProjectFileAdapter{}
