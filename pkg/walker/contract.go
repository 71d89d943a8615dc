package walker

import "context"

type EntryType string

const (
	EntryFile EntryType = "file"
	EntryDir  EntryType = "dir"
)

// Entry is one item of a directory listing.
type Entry struct {
	Name string    `json:"name" yaml:"name"`
	Path string    `json:"path" yaml:"path"`
	Type EntryType `json:"type" yaml:"type"`
}

func (e Entry) IsDir() bool { return e.Type == EntryDir }

// EncodingBase64 is the only content encoding that gets decoded;
// anything else is treated as text.
const EncodingBase64 = "base64"

// FileContent is the payload of a fetched file.
type FileContent struct {
	Content  string
	Encoding string
	Size     int
}

// ContentClient reads a content tree from a remote repository.
type ContentClient interface {
	// ListDirectory returns the entries of the directory at path, in the
	// order the remote supplies them. A missing path must produce an error
	// for which stories.IsNotFound returns true.
	ListDirectory(ctx context.Context, path string) ([]Entry, error)
	FetchFile(ctx context.Context, path string) (FileContent, error)
	TestConnectivity(ctx context.Context) error
}
