// # internal/semantic/events.go
package semantic

// TableEventKind enumerates symbol table notifications.
type TableEventKind int

const (
	SymbolInserted TableEventKind = iota
	ImportAdded
	FileChanged
)

func (k TableEventKind) String() string {
	switch k {
	case SymbolInserted:
		return "symbol_inserted"
	case ImportAdded:
		return "import_added"
	case FileChanged:
		return "file_changed"
	}
	return "unknown"
}

// TableEvent is emitted by a SymbolTable after the mutation it describes
// has been applied. Name carries the inserted symbol's qualified name or
// the import path; Path carries the current source file.
type TableEvent struct {
	Kind TableEventKind
	Name string
	Path string
}
