package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pmehra7/summingbird/internal/logical"
	"github.com/pmehra7/summingbird/internal/planner"
)

func samplePlan(t *testing.T) (*planner.Plan, map[logical.Operator]string) {
	t.Helper()

	src := logical.NewSource("click-stream")
	named := logical.NewPassthrough("named", logical.PassthroughName, src)
	expand := logical.NewTransform("expand", logical.TransformFlatMap, named)
	sum := logical.NewAggregate("sum", "counts", expand)

	plan, err := planner.Build(sum)
	require.NoError(t, err)

	ids := map[logical.Operator]string{src: "clicks", named: "named", expand: "expand", sum: "totals"}
	return plan, ids
}

func resolver(ids map[logical.Operator]string) IDResolver {
	return func(op logical.Operator) (string, bool) {
		id, ok := ids[op]
		return id, ok
	}
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	plan, ids := samplePlan(t)
	doc := NewDocument("clicks", plan, resolver(ids), []string{"audit"})

	require.Equal(t, "totals", doc.Terminal)
	require.Equal(t, 3, doc.StageCount)
	require.Len(t, doc.Fingerprint, 16)
	require.Equal(t, []string{"audit"}, doc.Unreachable)

	want := []StageDoc{
		{
			ID: 0, Name: "Summer-0", Kind: "aggregate",
			Members:   []MemberDoc{{ID: "totals", Name: "sum", Type: "aggregate", Store: "counts"}},
			DependsOn: []string{"FlatMap-1"},
		},
		{
			ID: 1, Name: "FlatMap-1", Kind: "transform",
			Members:   []MemberDoc{{ID: "expand", Name: "expand", Type: "transform", Kind: "flat_map"}},
			DependsOn: []string{"Source-2"},
			Feeds:     []string{"Summer-0"},
		},
		{
			ID: 2, Name: "Source-2", Kind: "source",
			Members: []MemberDoc{
				{ID: "clicks", Name: "click-stream", Type: "source"},
				{ID: "named", Name: "named", Type: "passthrough", Kind: "name"},
			},
			Feeds: []string{"FlatMap-1"},
		},
	}
	require.Empty(t, cmp.Diff(want, doc.Stages))
}

func TestNewDocumentWithoutIDs(t *testing.T) {
	t.Parallel()

	plan, _ := samplePlan(t)
	doc := NewDocument("clicks", plan, nil, nil)

	require.Equal(t, "sum", doc.Terminal)
	require.Empty(t, doc.Stages[0].Members[0].ID)
	require.Nil(t, doc.Unreachable)
}

func TestTextPlain(t *testing.T) {
	t.Parallel()

	plan, _ := samplePlan(t)
	doc := NewDocument("clicks", plan, nil, nil)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, doc, TextOptions{}))

	want := fmt.Sprintf(`Plan clicks
  terminal: sum
  stages: 3
  fingerprint: %s

Summer-0 (aggregate)
  1. sum aggregate store=counts
  reads from: FlatMap-1

FlatMap-1 (transform)
  1. expand transform/flat_map
  reads from: Source-2
  feeds: Summer-0

Source-2 (source)
  1. click-stream source
  2. named passthrough/name
  feeds: FlatMap-1
`, doc.Fingerprint)
	require.Equal(t, want, buf.String())
}

func TestTextShowsIDsAndWarnings(t *testing.T) {
	t.Parallel()

	plan, ids := samplePlan(t)
	doc := NewDocument("clicks", plan, resolver(ids), []string{"audit", "debug"})

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, doc, TextOptions{Color: true}))

	out := buf.String()
	require.Contains(t, out, "clicks (click-stream) source")
	require.Contains(t, out, "totals (sum) aggregate store=counts")
	require.Contains(t, out, "audit, debug")
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	plan, ids := samplePlan(t)
	doc := NewDocument("clicks", plan, resolver(ids), nil)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, doc, TextOptions{}))
	require.Contains(t, buf.String(), `"stage_count": 3`)
	require.NotContains(t, buf.String(), "unreachable")

	var decoded Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Empty(t, cmp.Diff(doc, decoded))
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	plan, ids := samplePlan(t)
	doc := NewDocument("clicks", plan, resolver(ids), []string{"audit"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, doc, TextOptions{}))
	require.Contains(t, buf.String(), "name: Summer-0")

	var decoded Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Empty(t, cmp.Diff(doc, decoded))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"text", "json", "yaml"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		require.Equal(t, Format(name), f)
	}

	_, err := ParseFormat("xml")
	require.ErrorContains(t, err, `unsupported output format "xml"`)
}
