package ports

import "context"

// DocumentSource reads raw documents from a file path or an http(s) URL.
type DocumentSource interface {
	Read(ctx context.Context, location string) ([]byte, error)
}
