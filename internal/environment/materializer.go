package environment

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tech-arch1tect/compose-resource/types"
)

const FileName = ".env"

type MaterializationError struct {
	Path string
	Err  error
}

func (e *MaterializationError) Error() string {
	return fmt.Sprintf("failed to materialize %s: %v", e.Path, e.Err)
}

func (e *MaterializationError) Unwrap() error {
	return e.Err
}

// Source describes where the .env content comes from. Inline pairs take
// precedence over EnvFile when both are set.
type Source struct {
	Env     types.Object
	EnvFile string
}

func (s Source) Requested() bool {
	return s.Env != nil || s.EnvFile != ""
}

// Materialize writes dir/.env when the source asks for it and reports whether
// a file was written. Nothing on disk is touched otherwise.
func Materialize(dir string, src Source) (bool, error) {
	if !src.Requested() {
		return false, nil
	}

	target := filepath.Join(dir, FileName)

	var content []byte
	if src.Env != nil {
		rendered, err := Render(src.Env)
		if err != nil {
			return false, &MaterializationError{Path: target, Err: err}
		}
		content = rendered
	} else {
		sourcePath := src.EnvFile
		if !filepath.IsAbs(sourcePath) {
			sourcePath = filepath.Join(dir, sourcePath)
		}
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return false, &MaterializationError{Path: target, Err: err}
		}
		content = data
	}

	if err := os.WriteFile(target, content, 0644); err != nil {
		return false, &MaterializationError{Path: target, Err: err}
	}
	return true, nil
}

// Render produces one KEY=VALUE line per entry in document order.
func Render(env types.Object) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range env {
		value := ""
		if !f.Value.IsNull() {
			s, err := f.Value.Scalar()
			if err != nil {
				return nil, fmt.Errorf("env %s: %w", f.Key, err)
			}
			value = s
		}
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		buf.WriteString(value)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
