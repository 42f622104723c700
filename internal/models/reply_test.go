package models

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPathSegment_FixedWidthHex(t *testing.T) {
	t.Parallel()

	for i := 0; i < 32; i++ {
		seg := PathSegment(uuid.New())
		require.Len(t, seg, 32)
		require.NotContains(t, seg, "-")
	}
}

func TestChildPath_RootAndNested(t *testing.T) {
	t.Parallel()

	rootID := uuid.New()
	childID := uuid.New()

	rootPath := ChildPath("", rootID)
	require.Equal(t, PathSegment(rootID), rootPath)

	childPath := ChildPath(rootPath, childID)
	require.Equal(t, rootPath+"."+PathSegment(childID), childPath)
}

// Лексическая сортировка путей даёт depth-first порядок: все потомки
// узла идут сразу за ним, до следующего узла того же уровня.
func TestChildPath_LexicalOrderIsDepthFirst(t *testing.T) {
	t.Parallel()

	rootA := ChildPath("", uuid.New())
	rootB := ChildPath("", uuid.New())
	if rootB < rootA {
		rootA, rootB = rootB, rootA
	}

	childA := ChildPath(rootA, uuid.New())
	grandA := ChildPath(childA, uuid.New())
	childB := ChildPath(rootB, uuid.New())

	paths := []string{childB, grandA, rootB, childA, rootA}
	sort.Strings(paths)

	require.Equal(t, []string{rootA, childA, grandA, rootB, childB}, paths)
}
