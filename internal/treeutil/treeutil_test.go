package treeutil_test

import (
	"strings"
	"testing"

	"github.com/k0kubun/pp/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajis-lang/ajis-go"
	"github.com/ajis-lang/ajis-go/internal/treeutil"
	"github.com/ajis-lang/ajis-go/parser"
	"github.com/ajis-lang/ajis-go/segment"
)

func mustParse(t *testing.T, src string) (*treeutil.Node, []segment.Segment) {
	t.Helper()

	p := parser.Open(strings.NewReader(src), ajis.AjisSettings(), nil, 0)
	var segs []segment.Segment
	for {
		seg, res := p.Next()
		if res != parser.ResultSegment {
			break
		}
		segs = append(segs, seg)
	}
	require.Nil(t, p.LastFatal())

	root, diags, err := treeutil.Build(segs)
	if err != nil {
		pp.Println(diags)
	}
	require.NoError(t, err)
	return root, segs
}

func TestBuildObject(t *testing.T) {
	t.Parallel()

	root, _ := mustParse(t, `{"a":1,"b":"x","c":[1,2,3],"d":null,"e":true}`)
	require.Equal(t, treeutil.KindObject, root.Kind)
	require.Len(t, root.Object, 5)

	assert.Equal(t, "a", root.Object[0].Name)
	assert.Equal(t, treeutil.KindNumber, root.Object[0].Value.Kind)
	assert.Equal(t, "1", root.Object[0].Value.Number)

	assert.Equal(t, "b", root.Object[1].Name)
	assert.Equal(t, "x", root.Object[1].Value.String)

	assert.Equal(t, "c", root.Object[2].Name)
	assert.Equal(t, treeutil.KindArray, root.Object[2].Value.Kind)
	assert.Len(t, root.Object[2].Value.Array, 3)

	assert.Equal(t, treeutil.KindNull, root.Object[3].Value.Kind)
	assert.Equal(t, treeutil.KindBool, root.Object[4].Value.Kind)
	assert.True(t, root.Object[4].Value.Bool)
}

func TestBuildPreservesDuplicateKeysInOrder(t *testing.T) {
	t.Parallel()

	s := ajis.LaxSettings()
	s.DuplicateKeys = ajis.DuplicateKeysAllow
	p := parser.Open(strings.NewReader(`{"a":1,"a":2}`), s, nil, 0)
	var segs []segment.Segment
	for {
		seg, res := p.Next()
		if res != parser.ResultSegment {
			break
		}
		segs = append(segs, seg)
	}
	require.Nil(t, p.LastFatal())

	root, _, err := treeutil.Build(segs)
	require.NoError(t, err)
	require.Len(t, root.Object, 2)
	assert.Equal(t, "a", root.Object[0].Name)
	assert.Equal(t, "1", root.Object[0].Value.Number)
	assert.Equal(t, "a", root.Object[1].Name)
	assert.Equal(t, "2", root.Object[1].Value.Number)
}

func TestBuildNestedArray(t *testing.T) {
	t.Parallel()

	root, _ := mustParse(t, `[[1,2],[3,4]]`)
	require.Equal(t, treeutil.KindArray, root.Kind)
	require.Len(t, root.Array, 2)
	assert.Len(t, root.Array[0].Array, 2)
	assert.Equal(t, "3", root.Array[1].Array[0].Number)
}
