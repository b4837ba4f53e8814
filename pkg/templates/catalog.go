package templates

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/notifydispatch/pkg/dispatch"
)

//go:embed catalog/default.yaml
var defaultCatalog []byte

// catalogFile is the on-disk YAML layout.
//
//	templates:
//	  - type: AccountConfirmation
//	    display_name: Account Confirmation
//	    locale: en-US
//	    content_type: text/html
//	    subject: ...
//	    body: ...
//	    footer: ...
type catalogFile struct {
	Templates []dispatch.Template `yaml:"templates"`
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(r io.Reader) ([]dispatch.Template, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return file.Templates, nil
}

// LoadFile reads a YAML catalog from path. The read is abandoned when ctx ends.
func LoadFile(ctx context.Context, path string) ([]dispatch.Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog %s: %w", path, err)
	}
	return ParseCatalog(bytes.NewReader(b))
}

// LoadPath loads the catalog at path. A directory contributes every .yaml
// and .yml file at its top level, in name order.
func LoadPath(ctx context.Context, path string) ([]dispatch.Template, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read template catalog %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(ctx, path)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFS(os.DirFS(path), "*.y*ml")
}

// LoadFS reads and concatenates every catalog in fsys matching pattern.
// Matches without a .yaml or .yml extension are skipped.
func LoadFS(fsys fs.FS, pattern string) ([]dispatch.Template, error) {
	paths, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, err
	}
	var out []dispatch.Template
	for _, p := range paths {
		if !isCatalogKey(p) {
			continue
		}
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, err
		}
		tpls, err := ParseCatalog(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, tpls...)
	}
	return out, nil
}

// DefaultCatalog returns the templates bundled with the binary.
func DefaultCatalog() []dispatch.Template {
	tpls, err := ParseCatalog(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(err)
	}
	return tpls
}
