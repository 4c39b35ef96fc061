package language

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed data/*.txt
var embedded embed.FS

// FSProvider reads Dictionary.<code>.txt resources from a file system.
type FSProvider struct {
	fsys fs.FS
	dir  string
}

// NewFSProvider creates a provider reading resources in dir of fsys.
func NewFSProvider(fsys fs.FS, dir string) *FSProvider {
	if dir == "" {
		dir = "."
	}
	return &FSProvider{fsys: fsys, dir: dir}
}

// Embedded returns a provider over the resources compiled into the binary.
func Embedded() *FSProvider {
	return NewFSProvider(embedded, "data")
}

// ResourceName returns the file name holding the data for code.
func ResourceName(code string) string {
	return fmt.Sprintf("Dictionary.%s.txt", code)
}

func (p *FSProvider) Load(ctx context.Context, cultureCode string, withLemmata bool) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	codes := FallbackCodes(cultureCode)
	for _, code := range codes {
		f, err := p.fsys.Open(path.Join(p.dir, ResourceName(code)))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open language data %s: %w", code, err)
		}
		data, err := Parse(f, code, withLemmata)
		f.Close()
		return data, err
	}
	return nil, &NotFoundError{Code: cultureCode, Tried: codes}
}
