package ports

import "context"

// Opener shows a page to the user, usually in the system browser.
type Opener interface {
	Open(ctx context.Context, target string) error
}
