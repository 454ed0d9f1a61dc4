package platform

// FileDialogType selects between open and save dialogs.
type FileDialogType int

const (
	FileDialogOpen FileDialogType = iota
	FileDialogSave
)

func (t FileDialogType) String() string {
	if t == FileDialogSave {
		return "save"
	}
	return "open"
}

// FileSpec names a file type filter, e.g. {"Text", []string{"txt", "md"}}.
type FileSpec struct {
	Name       string
	Extensions []string
}

// FileDialogOptions configures a file dialog.
type FileDialogOptions struct {
	ShowHidden   bool
	AllowedTypes []FileSpec
	DefaultName  string
}

// Allows reports whether path matches one of the allowed types. An empty
// filter allows everything.
func (o FileDialogOptions) Allows(path string) bool {
	if len(o.AllowedTypes) == 0 {
		return true
	}
	for _, spec := range o.AllowedTypes {
		for _, ext := range spec.Extensions {
			if hasExtension(path, ext) {
				return true
			}
		}
	}
	return false
}

func hasExtension(path, ext string) bool {
	n := len(path) - len(ext)
	return n > 0 && path[n-1] == '.' && path[n:] == ext
}
