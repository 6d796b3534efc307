package heap

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/atlas77-lang/atlas77/internal/constant"
	"github.com/atlas77-lang/atlas77/internal/value"
)

// planStep is one flattened step of a post-order walk over a Constant's
// nested shape (children before the list that holds them): either
// "allocate a string cell", "push a scalar", or "allocate a list cell made
// of the previous n materialized children". Caching the walk (instead
// of the cells themselves, which would violate immutability once shared)
// means PushList only re-derives the shape once per distinct constant, in
// the style of the teacher's converter.go Convert() cache.
type planStep struct {
	kind     constant.Kind
	str      string
	scalar   value.Value
	children int
}

type planCacheKey struct {
	pool  *constant.Pool
	index int
}

var planCache, _ = lru.New[planCacheKey, []planStep](256)

func buildPlan(c constant.Constant) []planStep {
	switch c.Kind {
	case constant.KindString:
		return []planStep{{kind: constant.KindString, str: c.Str}}
	case constant.KindList:
		var plan []planStep
		for _, elem := range c.List {
			plan = append(plan, buildPlan(elem)...)
		}
		plan = append(plan, planStep{kind: constant.KindList, children: len(c.List)})
		return plan
	case constant.KindInteger:
		return []planStep{{kind: constant.KindInteger, scalar: value.NewI64(c.Int)}}
	case constant.KindUnsignedInteger:
		return []planStep{{kind: constant.KindUnsignedInteger, scalar: value.NewU64(c.UInt)}}
	case constant.KindFloat:
		return []planStep{{kind: constant.KindFloat, scalar: value.NewFloat(c.Float64)}}
	case constant.KindBool:
		return []planStep{{kind: constant.KindBool, scalar: value.NewBool(c.Bool)}}
	default:
		return nil
	}
}

// Materialize allocates a fresh heap representation of pool.Entries[index],
// returning the Value to push. Every call allocates new cells: constants
// are immutable, but the slab has no notion of sharing, so two pushes of
// the same constant never alias the same cell.
func (h *Heap) Materialize(pool *constant.Pool, index int) (value.Value, error) {
	c, ok := pool.Get(index)
	if !ok {
		return value.Value{}, ConstError("heap: constant index out of range")
	}

	key := planCacheKey{pool: pool, index: index}
	plan, ok := planCache.Get(key)
	if !ok {
		plan = buildPlan(c)
		planCache.Add(key, plan)
	}

	var stack []value.Value
	for _, step := range plan {
		switch step.kind {
		case constant.KindString:
			idx, err := h.PutString(step.str)
			if err != nil {
				return value.Value{}, err
			}
			stack = append(stack, value.NewRef(value.Str, idx))
		case constant.KindList:
			n := step.children
			elems := append([]value.Value(nil), stack[len(stack)-n:]...)
			stack = stack[:len(stack)-n]
			idx, err := h.PutList(elems)
			if err != nil {
				return value.Value{}, err
			}
			stack = append(stack, value.NewRef(value.List, idx))
		default:
			stack = append(stack, step.scalar)
		}
	}
	return stack[len(stack)-1], nil
}
