// Package poet generates poems from a prompt under the constraints of a
// style guide. Two implementations exist: a deterministic template-based
// generator for development, and one backed by the OpenAI chat API.
package poet

import "context"

type Poet interface {
	GeneratePoem(ctx context.Context, prompt, guide string) (string, error)
}
