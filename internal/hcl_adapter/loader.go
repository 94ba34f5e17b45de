package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/statgridgo/internal/config"
	"github.com/specialistvlad/statgridgo/internal/ctxlog"
	"github.com/specialistvlad/statgridgo/internal/fsutil"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL graph loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every .hcl file under paths, decodes its stat and connect
// blocks and merges them into one model. Files are read in path order and
// blocks in source order. All diagnostics of a file are reported together.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		fileModel, diags := l.decodeFile(ctx, hclFile.Body)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		model.Merge(fileModel)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "stats", len(model.Stats), "connections", len(model.Connections))
	return model, nil
}

// LoadSource decodes a single in-memory graph definition. filename is used
// for diagnostics only.
func (l *Loader) LoadSource(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	model, diags := l.decodeFile(ctx, hclFile.Body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL source %s: %w", filename, diags)
	}
	return model, nil
}

func (l *Loader) decodeFile(ctx context.Context, body hcl.Body) (*config.Model, hcl.Diagnostics) {
	content, diags := body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	model := &config.Model{}
	for _, block := range content.Blocks {
		switch block.Type {
		case "stat":
			s, sdiags := translateStat(ctx, block)
			diags = append(diags, sdiags...)
			if s != nil {
				model.Stats = append(model.Stats, s)
			}
		case "connect":
			c, cdiags := translateConnection(ctx, block)
			diags = append(diags, cdiags...)
			if c != nil {
				model.Connections = append(model.Connections, c)
			}
		}
	}
	return model, diags
}
