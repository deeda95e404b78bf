package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/fogleman/gg"

	"github.com/kpauljoseph/medislate/internal/figures"
	"github.com/kpauljoseph/medislate/pkg/utils"
)

const (
	PNGFile = "fig_pipeline_diagram.png"
	DOTFile = "fig_pipeline_diagram.dot"

	graphName = "DataCollection"
)

type Node struct {
	ID    string
	Label string
}

type Edge struct {
	From string
	To   string
}

// Graph is a small directed acyclic graph drawn left to right.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// DataCollection is the lecture dataset's collection workflow.
func DataCollection() *Graph {
	return &Graph{
		Nodes: []Node{
			{ID: "A", Label: "Classroom Recording"},
			{ID: "B", Label: "Slide Export"},
			{ID: "C", Label: "ASR Transcription"},
			{ID: "D", Label: "Text Refinement"},
			{ID: "E", Label: "Slide-Text Alignment"},
			{ID: "F", Label: "Dataset Construction"},
			{ID: "G", Label: "Statistics + Figures"},
			{ID: "H", Label: "Public Release"},
		},
		Edges: []Edge{
			{From: "A", To: "C"},
			{From: "A", To: "B"},
			{From: "C", To: "D"},
			{From: "B", To: "E"},
			{From: "D", To: "E"},
			{From: "E", To: "F"},
			{From: "F", To: "G"},
			{From: "G", To: "H"},
		},
	}
}

func (g *Graph) node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Ranks assigns every node its longest-path distance from a source.
// It fails on unknown endpoints and on cycles.
func (g *Graph) Ranks() (map[string]int, error) {
	indegree := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		indegree[n.ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := indegree[e.From]; !ok {
			return nil, fmt.Errorf("edge from unknown node %q", e.From)
		}
		if _, ok := indegree[e.To]; !ok {
			return nil, fmt.Errorf("edge to unknown node %q", e.To)
		}
		indegree[e.To]++
	}

	ranks := make(map[string]int, len(g.Nodes))
	var queue []string
	for _, n := range g.Nodes {
		ranks[n.ID] = 0
		if indegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, e := range g.Edges {
			if e.From != id {
				continue
			}
			if ranks[id]+1 > ranks[e.To] {
				ranks[e.To] = ranks[id] + 1
			}
			indegree[e.To]--
			if indegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	if visited != len(g.Nodes) {
		return nil, fmt.Errorf("graph %s contains a cycle", graphName)
	}
	return ranks, nil
}

// DOT renders the graph in Graphviz syntax.
func (g *Graph) DOT() (string, error) {
	gv := gographviz.NewGraph()
	if err := gv.SetName(graphName); err != nil {
		return "", err
	}
	if err := gv.SetDir(true); err != nil {
		return "", err
	}
	if err := gv.AddAttr(graphName, "rankdir", "LR"); err != nil {
		return "", err
	}

	for _, n := range g.Nodes {
		attrs := map[string]string{
			"label": strconv.Quote(n.Label),
			"shape": "box",
			"style": `"rounded,filled"`,
		}
		if err := gv.AddNode(graphName, n.ID, attrs); err != nil {
			return "", fmt.Errorf("failed to add node %s: %w", n.ID, err)
		}
	}
	for _, e := range g.Edges {
		if err := gv.AddEdge(e.From, e.To, true, nil); err != nil {
			return "", fmt.Errorf("failed to add edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return gv.String(), nil
}

func (g *Graph) WriteDOT(path string) error {
	dot, err := g.DOT()
	if err != nil {
		return err
	}
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(dot), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

const (
	boxWidth  = 220.0
	boxHeight = 60.0
	colGap    = 70.0
	rowGap    = 40.0
	margin    = 30.0
	labelSize = 16.0
)

var (
	boxFill   = color.RGBA{R: 222, G: 235, B: 247, A: 255}
	boxStroke = color.RGBA{R: 49, G: 130, B: 189, A: 255}
	edgeColor = color.RGBA{R: 80, G: 80, B: 80, A: 255}
)

type box struct {
	x, y float64
}

// layout positions boxes in columns by rank and rows by declaration order.
func (g *Graph) layout() (map[string]box, int, int, error) {
	ranks, err := g.Ranks()
	if err != nil {
		return nil, 0, 0, err
	}

	columns := map[int][]string{}
	maxRank := 0
	for _, n := range g.Nodes {
		r := ranks[n.ID]
		columns[r] = append(columns[r], n.ID)
		if r > maxRank {
			maxRank = r
		}
	}

	maxRows := 0
	for _, ids := range columns {
		if len(ids) > maxRows {
			maxRows = len(ids)
		}
	}

	width := int(2*margin + float64(maxRank+1)*boxWidth + float64(maxRank)*colGap)
	height := int(2*margin + float64(maxRows)*boxHeight + float64(maxRows-1)*rowGap)

	boxes := make(map[string]box, len(g.Nodes))
	rankKeys := make([]int, 0, len(columns))
	for r := range columns {
		rankKeys = append(rankKeys, r)
	}
	sort.Ints(rankKeys)
	for _, r := range rankKeys {
		ids := columns[r]
		colHeight := float64(len(ids))*boxHeight + float64(len(ids)-1)*rowGap
		top := (float64(height) - colHeight) / 2
		for i, id := range ids {
			boxes[id] = box{
				x: margin + float64(r)*(boxWidth+colGap),
				y: top + float64(i)*(boxHeight+rowGap),
			}
		}
	}
	return boxes, width, height, nil
}

// RenderPNG draws the graph as rounded boxes joined by arrows.
func (g *Graph) RenderPNG(path string) error {
	boxes, width, height, err := g.layout()
	if err != nil {
		return err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(edgeColor)
	dc.SetLineWidth(2)
	for _, e := range g.Edges {
		from, to := boxes[e.From], boxes[e.To]
		x1, y1 := from.x+boxWidth, from.y+boxHeight/2
		x2, y2 := to.x, to.y+boxHeight/2
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		drawArrowHead(dc, x1, y1, x2, y2)
	}

	dc.SetFontFace(figures.NewFontCache(false).Face(labelSize))
	for _, n := range g.Nodes {
		b := boxes[n.ID]
		dc.DrawRoundedRectangle(b.x, b.y, boxWidth, boxHeight, 10)
		dc.SetColor(boxFill)
		dc.FillPreserve()
		dc.SetColor(boxStroke)
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.SetColor(color.Black)
		dc.DrawStringWrapped(n.Label, b.x+boxWidth/2, b.y+boxHeight/2, 0.5, 0.5, boxWidth-16, 1.2, gg.AlignCenter)
	}

	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save diagram %s: %w", path, err)
	}
	return nil
}

func drawArrowHead(dc *gg.Context, x1, y1, x2, y2 float64) {
	const size = 10.0
	dc.Push()
	dc.RotateAbout(math.Atan2(y2-y1, x2-x1), x2, y2)
	dc.MoveTo(x2, y2)
	dc.LineTo(x2-size, y2-size/2)
	dc.LineTo(x2-size, y2+size/2)
	dc.ClosePath()
	dc.Fill()
	dc.Pop()
}
