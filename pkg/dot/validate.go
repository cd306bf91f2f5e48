package dot

import (
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/felipe/pkg/errors"
)

// Validate parses src with Graphviz and reports syntax errors as
// ErrCodeInvalidDOT. No layout or rendering is performed.
func Validate(ctx context.Context, src string) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDOT, err, "parse DOT")
	}
	defer g.Close()
	return nil
}
