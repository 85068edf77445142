// # internal/workspace/file.go
package workspace

import "syskb/internal/syntax"

// File is one tracked source file and its parsed content. Version
// starts at 0 and increments on every content update.
type File struct {
	path      string
	content   *syntax.File
	version   int
	populated bool
}

func newFile(path string, content *syntax.File) *File {
	return &File{path: path, content: content}
}

func (f *File) Path() string          { return f.path }
func (f *File) Content() *syntax.File { return f.content }
func (f *File) Version() int          { return f.version }
func (f *File) IsPopulated() bool     { return f.populated }

func (f *File) update(content *syntax.File) {
	f.content = content
	f.version++
	f.populated = false
}
