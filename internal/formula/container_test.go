package formula

import (
	"sync"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, err := Parse(src, "test.hcl", hcl.Pos{})
	require.NoError(t, err)
	return expr
}

func traversalKeys(refs []hcl.Traversal) []string {
	keys := make([]string, 0, len(refs))
	for _, r := range refs {
		keys = append(keys, TraversalKey(r))
	}
	return keys
}

func TestContainer_AddAndExtract(t *testing.T) {
	c := NewContainer()
	c.Add(
		parseExpr(t, `floor(input.str / 2)`),
		parseExpr(t, `input.agi`),
		parseExpr(t, `max(input.str, abs(input.agi))`),
	)

	require.Equal(t, 3, c.Len())
	require.Equal(t, []string{"abs", "floor", "max"}, c.CalledFunctions())
	require.Equal(t, []string{"input.agi", "input.str"}, traversalKeys(c.References()))
}

func TestContainer_AddAfterExtract(t *testing.T) {
	c := NewContainer()
	c.Add(parseExpr(t, `x`))
	require.Equal(t, []string{"x"}, traversalKeys(c.References()))
	require.Empty(t, c.CalledFunctions())

	c.Add(parseExpr(t, `pow(y, 2)`))
	require.Equal(t, []string{"pow"}, c.CalledFunctions())
	require.Equal(t, []string{"x", "y"}, traversalKeys(c.References()))
}

func TestContainer_NilAndEmpty(t *testing.T) {
	c := NewContainer()
	require.Empty(t, c.References())
	require.Empty(t, c.CalledFunctions())

	c.Add(nil, parseExpr(t, `x`), nil)
	require.Equal(t, 1, c.Len())
}

func TestContainer_ConcurrentAccess(t *testing.T) {
	c := NewContainer()
	c.Add(parseExpr(t, `x + y`), parseExpr(t, `ceil(x)`))

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				require.Len(t, c.References(), 2)
			} else {
				require.Len(t, c.CalledFunctions(), 1)
			}
		}()
	}
	wg.Wait()
}
