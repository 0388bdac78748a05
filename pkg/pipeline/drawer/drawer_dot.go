package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/tagwerk/tagwerk/internal/store"
	"github.com/tagwerk/tagwerk/pkg/pipeline/measure"
)

// DOTDrawer renders the pipeline graph as a Graphviz DOT file. The graph
// is cycle-checked on every link, so a drawn pipeline is guaranteed to be
// a chain.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	store       store.CustomStore[string, string]
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	st := store.NewMemoryStore[string, string]()

	return &DOTDrawer{
		dotFileName: dotFileName,
		store:       st,
		graph:       graph.NewWithStore[string, string](graph.StringHash, st, graph.Directed(), graph.PreventCycles()),
	}
}

// AddStage adds a stage to the pipeline graph.
func (d *DOTDrawer) AddStage(stageName string) error {
	err := d.graph.AddVertex(stageName)
	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", stageName)
	}

	return nil
}

// AddLink adds a link between parent and child stages.
func (d *DOTDrawer) AddLink(parentStageName, childStageName string) error {
	err := d.graph.AddEdge(parentStageName, childStageName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentStageName, childStageName)
	}

	return nil
}

// SetElapsed annotates a stage with its wall-clock time. Stages finish
// concurrently; the store serialises the updates.
func (d *DOTDrawer) SetElapsed(stageName string, elapsed time.Duration) error {
	d.store.UpdateVertex(stageName, func(props *graph.VertexProperties) {
		props.Attributes["xlabel"] = elapsed.String()
	})

	return nil
}

const maxRGB = 240

// AddMeasure colours every measured stage on a blue-to-red scale, red
// being the slowest stage of the run.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	all := msr.AllMetrics()

	var minElapsed, maxElapsed time.Duration
	for _, mt := range all {
		elapsed := mt.GetTotalDuration()
		if elapsed == 0 {
			continue
		}
		if minElapsed == 0 || elapsed < minElapsed {
			minElapsed = elapsed
		}
		if elapsed > maxElapsed {
			maxElapsed = elapsed
		}
	}

	if maxElapsed == 0 {
		return nil
	}

	for name, mt := range all {
		elapsed := mt.GetTotalDuration()
		if elapsed == 0 {
			continue
		}

		fraction := 1.0
		if maxElapsed > minElapsed {
			fraction = float64(elapsed-minElapsed) / float64(maxElapsed-minElapsed)
		}

		col, err := colors.RGB(uint8(maxRGB*fraction), 0, uint8(maxRGB-maxRGB*fraction)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		d.store.UpdateVertex(name, func(props *graph.VertexProperties) {
			props.Attributes["color"] = col.ToHEX().String()
		})
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.dot(file)
	if err != nil {
		return errors.Wrapf(err, "unable to render dot file %s", d.dotFileName)
	}

	return nil
}

func (d *DOTDrawer) dot(wrt io.Writer) error {
	adjacency, err := d.graph.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacency))
	for vertex := range adjacency {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)

	fmt.Fprintln(wrt, "strict digraph {")

	for _, vertex := range vertices {
		_, props, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		fmt.Fprintf(wrt, "\t%q [%s];\n", vertex, attributeList(props.Attributes))
	}

	for _, vertex := range vertices {
		targets := make([]string, 0, len(adjacency[vertex]))
		for target := range adjacency[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			fmt.Fprintf(wrt, "\t%q -> %q;\n", vertex, target)
		}
	}

	fmt.Fprintln(wrt, "}")

	return nil
}

func attributeList(attributes map[string]string) string {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := ""
	for i, key := range keys {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s=%q", key, attributes[key])
	}

	return out
}

var _ Drawer = (*DOTDrawer)(nil)
