// Package formula compiles the HCL expressions used as stat formulas into
// plain Go functions, after checking that they only use the variables and
// functions a formula is allowed to see.
package formula

import (
	"sync"

	"github.com/hashicorp/hcl/v2"
)

// Container gathers expressions and reports the variables they reference and
// the functions they call. Results are computed lazily and recomputed after
// every Add. It is safe for concurrent use.
type Container struct {
	mu          sync.Mutex
	expressions []hcl.Expression
	analyzed    bool

	references      []hcl.Traversal
	calledFunctions []string
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends expressions for analysis. Nil expressions are ignored.
func (c *Container) Add(exprs ...hcl.Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, expr := range exprs {
		if expr != nil {
			c.expressions = append(c.expressions, expr)
		}
	}
	c.analyzed = false
}

// Len returns the number of expressions added.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.expressions)
}

func (c *Container) analyzeLocked() {
	if c.analyzed {
		return
	}
	c.references, c.calledFunctions = extractReferencesAndFunctions(c.expressions...)
	c.analyzed = true
}

// References returns every unique variable traversal, sorted by TraversalKey.
func (c *Container) References() []hcl.Traversal {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyzeLocked()
	return c.references
}

// CalledFunctions returns the sorted, unique names of every function called.
func (c *Container) CalledFunctions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.analyzeLocked()
	return c.calledFunctions
}
