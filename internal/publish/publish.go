// Package publish delivers a rendered Markdown report to its destinations.
package publish

import "context"

// Publisher delivers a rendered report somewhere outside the process.
type Publisher interface {
	Publish(ctx context.Context, markdown string) error
}
