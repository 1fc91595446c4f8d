// Package uploader sends local image files to a media host and hands back a
// durable URL. The catalog only ever talks to the Uploader interface; which
// host sits behind it is wiring-time configuration.
package uploader

import "context"

// Uploader stores the file at localPath and returns its hosted URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}
