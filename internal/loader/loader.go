package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"golang.org/x/sync/errgroup"

	"archcompare/internal/compare"
	"archcompare/internal/models"
	"archcompare/pkg/logging"
)

type DefaultLoader struct {
	logger logging.Logger
}

// NewDefaultLoader creates a new instance of DefaultLoader
func NewDefaultLoader() *DefaultLoader {
	return NewLoaderWithLogger(
		logging.NewDefaultLogger(),
	)
}

// NewLoaderWithLogger creates a new instance of DefaultLoader with a specific logger
func NewLoaderWithLogger(logger logging.Logger) *DefaultLoader {
	return &DefaultLoader{
		logger: logger,
	}
}

// Load reads a document from disk. Files ending in .hcl or .tf are parsed as
// HCL attribute bodies, everything else as JSON.
func (l DefaultLoader) Load(path string) (*models.Document, error) {
	if path == "" {
		return nil, compare.NewError(compare.ErrInvalidInput, "document path is empty", "", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, compare.NewMissingInputError(path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var root any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".tf":
		l.logger.Debug("Parsing %s as HCL", path)
		root, err = parseHCL(path, data)
	default:
		l.logger.Debug("Parsing %s as JSON", path)
		root, err = parseJSON(path, data)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loaded %s (%d bytes)", path, len(data))
	return models.NewDocument(path, root), nil
}

// LoadAll loads the four comparator inputs concurrently. The first failure
// cancels the rest and is returned.
func LoadAll(ctx context.Context, loader DocumentLoader, paths Paths) (*Documents, error) {
	var docs Documents
	targets := []struct {
		path string
		dest **models.Document
	}{
		{paths.Baseline, &docs.Baseline},
		{paths.Enhanced, &docs.Enhanced},
		{paths.BaselineReasoning, &docs.BaselineReasoning},
		{paths.EnhancedReasoning, &docs.EnhancedReasoning},
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := loader.Load(target.path)
			if err != nil {
				return err
			}
			*target.dest = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &docs, nil
}

func parseJSON(path string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, compare.NewParseError(path, errors.New("document is empty"))
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := lineColumn(data, syntaxErr.Offset)
			return nil, compare.NewParseError(path, fmt.Errorf("line %d, column %d (offset %d): %w", line, col, syntaxErr.Offset, err))
		}
		return nil, compare.NewParseError(path, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		offset := dec.InputOffset()
		line, col := lineColumn(data, offset)
		return nil, compare.NewParseError(path, fmt.Errorf("line %d, column %d (offset %d): unexpected data after document", line, col, offset))
	}

	return compare.NormalizeNumbers(root), nil
}

// parseHCL evaluates a body of top-level attributes without variables or
// functions and converts the result to the same generic tree JSON produces.
func parseHCL(path string, data []byte) (any, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, compare.NewParseError(path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, compare.NewParseError(path, diags)
	}

	root := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, compare.NewParseError(path, diags)
		}

		encoded, err := ctyjson.SimpleJSONValue{Value: val}.MarshalJSON()
		if err != nil {
			return nil, compare.NewParseError(path, fmt.Errorf("attribute %q: %w", name, err))
		}

		dec := json.NewDecoder(bytes.NewReader(encoded))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, compare.NewParseError(path, fmt.Errorf("attribute %q: %w", name, err))
		}
		root[name] = compare.NormalizeNumbers(v)
	}

	return root, nil
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
