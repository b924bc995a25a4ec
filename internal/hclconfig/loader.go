package hclconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carloslema/lwtnn/internal/config"
	"github.com/carloslema/lwtnn/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// StdinPath is the path that makes Load read one configuration from Stdin.
const StdinPath = "-"

// Loader implements config.Loader for HCL and JSON graph files.
type Loader struct {
	// Stdin is read when StdinPath appears among the paths given to Load.
	Stdin io.Reader
}

var _ config.Loader = (*Loader)(nil)

// NewLoader returns a Loader that reads StdinPath from the process stdin.
func NewLoader() *Loader {
	return &Loader{Stdin: os.Stdin}
}

// Load parses every configuration file found under paths, in order, and
// merges their blocks into one model. Directories are walked recursively.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if len(paths) == 0 {
		return nil, errors.New("no configuration paths given")
	}

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	model := &config.Model{}
	fileCount := 0

	for _, path := range paths {
		if path == StdinPath {
			if err := l.loadStdin(parser, evalCtx, model); err != nil {
				return nil, err
			}
			fileCount++
			continue
		}

		files, err := findConfigFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to find configuration files in %s: %w", path, err)
		}
		for _, name := range files {
			logger.Debug("Parsing configuration file.", "path", name)
			var file *hcl.File
			var diags hcl.Diagnostics
			if isJSON(name) {
				file, diags = parser.ParseJSONFile(name)
			} else {
				file, diags = parser.ParseHCLFile(name)
			}
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse %s: %w", name, diags)
			}
			if diags := decodeFile(file, evalCtx, model); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode %s: %w", name, diags)
			}
			fileCount++
		}
	}

	if fileCount == 0 {
		return nil, fmt.Errorf("no configuration files found in %s", strings.Join(paths, ", "))
	}

	logger.Info("Configuration loaded.", "files", fileCount, "nodes", len(model.Nodes), "layers", len(model.Layers))
	return model, nil
}

// Parse decodes a single in-memory configuration. Sources starting with '{'
// are read as JSON, anything else as native HCL.
func Parse(src []byte, filename string) (*config.Model, error) {
	model := &config.Model{}
	if err := parseInto(hclparse.NewParser(), newEvalContext(), src, filename, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) loadStdin(parser *hclparse.Parser, evalCtx *hcl.EvalContext, model *config.Model) error {
	if l.Stdin == nil {
		return errors.New("no stdin configured for loader")
	}
	src, err := io.ReadAll(l.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read configuration from stdin: %w", err)
	}
	return parseInto(parser, evalCtx, src, "<stdin>", model)
}

func parseInto(parser *hclparse.Parser, evalCtx *hcl.EvalContext, src []byte, filename string, model *config.Model) error {
	var file *hcl.File
	var diags hcl.Diagnostics
	if bytes.HasPrefix(bytes.TrimSpace(src), []byte("{")) {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %w", filename, diags)
	}
	if diags := decodeFile(file, evalCtx, model); diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", filename, diags)
	}
	return nil
}
