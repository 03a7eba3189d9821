package thymeleaf

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// TemplateResolver looks up template source by name.
// Implementations must be safe for concurrent use.
type TemplateResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// NameNormalizer is implemented by resolvers under which several names refer
// to the same template. Caches key entries by the normalized name.
type NameNormalizer interface {
	NormalizeName(name string) string
}

// MemoryResolver serves templates held in memory.
type MemoryResolver struct {
	mu        sync.RWMutex
	templates map[string]string
}

// NewMemoryResolver creates a resolver seeded with templates. The map is copied.
func NewMemoryResolver(templates map[string]string) *MemoryResolver {
	r := &MemoryResolver{templates: make(map[string]string, len(templates))}
	for name, source := range templates {
		r.templates[name] = source
	}
	return r
}

// Add stores or replaces a template.
func (r *MemoryResolver) Add(name, source string) error {
	if name == "" {
		return NewInvalidTemplateNameError(name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[name] = source
	return nil
}

// Remove deletes a template and reports whether it existed.
func (r *MemoryResolver) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.templates[name]
	delete(r.templates, name)
	return ok
}

// Names returns the stored template names in sorted order.
func (r *MemoryResolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the named template
func (r *MemoryResolver) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.templates[name]
	if !ok {
		return "", NewTemplateNotFoundError(name)
	}
	return source, nil
}

// FileResolver serves templates from files below Root. A template name maps
// to Root/name + Suffix; names with a traversal component are rejected.
type FileResolver struct {
	Root   string
	Suffix string
}

// NewFileResolver creates a resolver for templates under root with the default suffix.
func NewFileResolver(root string) *FileResolver {
	return &FileResolver{Root: root, Suffix: DefaultTemplateSuffix}
}

// NormalizeName maps a template name to the form Name returns for its file:
// slash separated and without the suffix, so "page" and "page.html" agree.
func (r *FileResolver) NormalizeName(name string) string {
	name = filepath.ToSlash(filepath.FromSlash(name))
	if r.Suffix != "" {
		name = strings.TrimSuffix(name, r.Suffix)
	}
	return name
}

// Path returns the file path a template name maps to.
func (r *FileResolver) Path(name string) (string, error) {
	if err := validateTemplateName(name); err != nil {
		return "", err
	}
	file := filepath.FromSlash(name)
	if r.Suffix != "" && !strings.HasSuffix(file, r.Suffix) {
		file += r.Suffix
	}
	return filepath.Join(r.Root, file), nil
}

// Name returns the template name for a file path below Root, and false for
// paths outside Root or without the suffix.
func (r *FileResolver) Name(path string) (string, bool) {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	if r.Suffix != "" {
		if !strings.HasSuffix(rel, r.Suffix) {
			return "", false
		}
		rel = strings.TrimSuffix(rel, r.Suffix)
	}
	return filepath.ToSlash(rel), true
}

// Resolve reads the named template from disk
func (r *FileResolver) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}
	source, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewTemplateNotFoundError(name)
		}
		return "", NewIOError(path, err)
	}
	return string(source), nil
}

// validateTemplateName rejects empty names, absolute paths and ".." components.
func validateTemplateName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, "\\") || filepath.IsAbs(name) {
		return NewInvalidTemplateNameError(name)
	}
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return NewInvalidTemplateNameError(name)
		}
	}
	return nil
}
