package pcb

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/OpenTraceGAL/pkg/geom"
	"github.com/OpenTraceLab/OpenTraceGAL/pkg/kicad/sexp"
)

// MinSupportedVersion is the oldest board format accepted (KiCad 5).
const MinSupportedVersion = 20171130

// ParseFile reads and parses a KiCad board file.
func ParseFile(filename string) (*Board, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads the copper topology of a KiCad board: nets, design rules,
// track segments, vias and filled zone outlines.
func Parse(r io.Reader) (*Board, error) {
	sexps, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root, ok := sexps[0].(*sexp.List)
	if !ok || sexp.Name(root) != "kicad_pcb" {
		return nil, fmt.Errorf("not a KiCad PCB file: expected 'kicad_pcb', got '%s'", sexp.Name(sexps[0]))
	}

	board := NewBoard()
	if err := parseHeader(root, board); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	nets, err := parseNets(root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nets: %w", err)
	}
	board.Nets = nets

	if err := parseDesignRules(root, board); err != nil {
		return nil, fmt.Errorf("failed to parse design rules: %w", err)
	}

	for _, node := range sexp.FindAll(root, "segment") {
		seg, err := parseSegment(node)
		if err != nil {
			return nil, fmt.Errorf("failed to parse segment: %w", err)
		}
		board.Add(seg)
	}

	for _, node := range sexp.FindAll(root, "via") {
		via, err := parseVia(node)
		if err != nil {
			return nil, fmt.Errorf("failed to parse via: %w", err)
		}
		board.Add(via)
	}

	for _, node := range sexp.FindAll(root, "zone") {
		segs, err := parseZone(node)
		if err != nil {
			return nil, fmt.Errorf("failed to parse zone: %w", err)
		}
		for _, s := range segs {
			board.Add(s)
		}
	}

	return board, nil
}

// parseHeader reads (version N) and (generator X) or the older (host X ...).
func parseHeader(root *sexp.List, board *Board) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}
	ver, err := sexp.Int(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}
	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 5)", ver, MinSupportedVersion)
	}
	board.Version = ver

	board.Generator = "unknown"
	if node, found := sexp.FindNode(root, "generator"); found {
		if gen, err := sexp.String(node, 1); err == nil {
			board.Generator = gen
		}
	} else if node, found := sexp.FindNode(root, "host"); found {
		if gen, err := sexp.String(node, 1); err == nil {
			board.Generator = gen
		}
	}
	return nil
}

// parseNets reads the top-level (net <code> "<name>") declarations.
func parseNets(root *sexp.List) ([]Net, error) {
	var nets []Net
	for _, node := range sexp.FindAll(root, "net") {
		code, err := sexp.Int(node, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to parse net number: %w", err)
		}
		name, _ := sexp.String(node, 2)
		nets = append(nets, Net{Code: code, Name: name})
	}
	return nets, nil
}

// parseDesignRules reads board minimums from (setup ...) and the KiCad 5
// (net_class ...) tables. Newer boards keep net classes in the project file,
// in which case the defaults stay in place.
func parseDesignRules(root *sexp.List, board *Board) error {
	ds := board.Settings

	if setup, found := sexp.FindNode(root, "setup"); found {
		fields := []struct {
			key string
			dst *float64
		}{
			{"trace_min", &ds.TrackMinWidth},
			{"via_min_size", &ds.ViaMinSize},
			{"via_min_drill", &ds.ViaMinDrill},
			{"uvia_min_size", &ds.MicroViaMinSize},
			{"uvia_min_drill", &ds.MicroViaMinDrill},
		}
		for _, f := range fields {
			if err := optionalFloat(setup, f.key, f.dst); err != nil {
				return err
			}
		}
	}

	for _, node := range sexp.FindAll(root, "net_class") {
		name, err := sexp.String(node, 1)
		if err != nil {
			return fmt.Errorf("failed to parse net class name: %w", err)
		}
		nc := DefaultNetClass()
		if existing, ok := ds.NetClass(name); ok {
			nc = existing
		}
		nc.Name = name

		fields := []struct {
			key string
			dst *float64
		}{
			{"clearance", &nc.Clearance},
			{"trace_width", &nc.TrackWidth},
			{"via_dia", &nc.ViaDiameter},
			{"via_drill", &nc.ViaDrill},
			{"uvia_dia", &nc.MicroViaDiameter},
			{"uvia_drill", &nc.MicroViaDrill},
		}
		for _, f := range fields {
			if err := optionalFloat(node, f.key, f.dst); err != nil {
				return fmt.Errorf("net class %s: %w", name, err)
			}
		}
		ds.SetNetClass(nc)

		for _, add := range sexp.FindAll(node, "add_net") {
			netName, err := sexp.String(add, 1)
			if err != nil {
				return fmt.Errorf("net class %s: %w", name, err)
			}
			net, ok := board.NetByName(netName)
			if !ok {
				continue
			}
			if err := ds.AssignNet(net.Code, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func optionalFloat(node *sexp.List, key string, dst *float64) error {
	child, found := sexp.FindNode(node, key)
	if !found {
		return nil
	}
	v, err := sexp.Float(child, 1)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	*dst = v
	return nil
}

// parseSegment reads (segment (start x y) (end x y) (width w) (layer L) (net n)).
func parseSegment(node *sexp.List) (Segment, error) {
	seg := Segment{Kind: KindTrack, Width: 0.15}

	start, err := requirePoint(node, "start")
	if err != nil {
		return seg, err
	}
	end, err := requirePoint(node, "end")
	if err != nil {
		return seg, err
	}
	seg.Start, seg.End = start, end

	if err := optionalFloat(node, "width", &seg.Width); err != nil {
		return seg, err
	}

	layerNode, found := sexp.FindNode(node, "layer")
	if !found {
		return seg, fmt.Errorf("line %d: missing required 'layer' field", node.Line)
	}
	name, err := sexp.String(layerNode, 1)
	if err != nil {
		return seg, err
	}
	if seg.Layer, err = LayerByName(name); err != nil {
		return seg, fmt.Errorf("line %d: %w", node.Line, err)
	}
	seg.BottomLayer = seg.Layer

	if seg.NetCode, err = netCode(node); err != nil {
		return seg, err
	}
	seg.Locked = isLocked(node)
	return seg, nil
}

// parseVia reads (via [blind|micro] (at x y) (size d) [(drill d)] (layers A B) (net n)).
// A via without a drill uses its net class default.
func parseVia(node *sexp.List) (Segment, error) {
	pos, err := requirePoint(node, "at")
	if err != nil {
		return Segment{}, err
	}
	via := NewVia(pos, 0, 0)

	sizeNode, found := sexp.FindNode(node, "size")
	if !found {
		return via, fmt.Errorf("line %d: missing required 'size' field", node.Line)
	}
	if via.Width, err = sexp.Float(sizeNode, 1); err != nil {
		return via, err
	}
	if err := optionalFloat(node, "drill", &via.Drill); err != nil {
		return via, err
	}

	switch {
	case sexp.HasSymbol(node, "micro"):
		via.ViaType = ViaMicro
	case sexp.HasSymbol(node, "blind"):
		via.ViaType = ViaBlindBuried
	}

	if layersNode, found := sexp.FindNode(node, "layers"); found {
		args := sexp.Args(layersNode)
		if len(args) != 2 {
			return via, fmt.Errorf("line %d: via needs two layers, got %d", layersNode.Line, len(args))
		}
		top, err := LayerByName(args[0].String())
		if err != nil {
			return via, fmt.Errorf("line %d: %w", layersNode.Line, err)
		}
		bottom, err := LayerByName(args[1].String())
		if err != nil {
			return via, fmt.Errorf("line %d: %w", layersNode.Line, err)
		}
		via.SetLayerPair(top, bottom)
	}

	if via.NetCode, err = netCode(node); err != nil {
		return via, err
	}
	via.Locked = isLocked(node)
	return via, nil
}

// parseZone turns each copper filled polygon of a zone into closed loops of
// zone strokes, min_thickness wide.
func parseZone(node *sexp.List) ([]Segment, error) {
	net, err := netCode(node)
	if err != nil {
		return nil, err
	}

	width := 0.0
	if err := optionalFloat(node, "min_thickness", &width); err != nil {
		return nil, err
	}

	zoneLayer := UndefinedLayer
	if layerNode, found := sexp.FindNode(node, "layer"); found {
		if name, err := sexp.String(layerNode, 1); err == nil {
			zoneLayer, _ = LayerByName(name)
		}
	}

	var segs []Segment
	for _, poly := range sexp.FindAll(node, "filled_polygon") {
		layer := zoneLayer
		if layerNode, found := sexp.FindNode(poly, "layer"); found {
			if name, err := sexp.String(layerNode, 1); err == nil {
				layer, _ = LayerByName(name)
			}
		}
		if !layer.IsValid() {
			continue
		}

		pts, found := sexp.FindNode(poly, "pts")
		if !found {
			continue
		}
		var corners []geom.Vector2D
		for _, xy := range sexp.FindAll(pts, "xy") {
			p, err := point(xy)
			if err != nil {
				return nil, err
			}
			corners = append(corners, p)
		}
		for i := range corners {
			next := corners[(i+1)%len(corners)]
			segs = append(segs, NewZoneSegment(corners[i], next, width, layer, net))
		}
	}
	return segs, nil
}

func point(node *sexp.List) (geom.Vector2D, error) {
	x, err := sexp.Float(node, 1)
	if err != nil {
		return geom.Vector2D{}, err
	}
	y, err := sexp.Float(node, 2)
	if err != nil {
		return geom.Vector2D{}, err
	}
	return geom.Vector2D{X: x, Y: y}, nil
}

func requirePoint(node *sexp.List, key string) (geom.Vector2D, error) {
	child, found := sexp.FindNode(node, key)
	if !found {
		return geom.Vector2D{}, fmt.Errorf("line %d: missing required '%s' position", node.Line, key)
	}
	p, err := point(child)
	if err != nil {
		return geom.Vector2D{}, fmt.Errorf("failed to parse %s position: %w", key, err)
	}
	return p, nil
}

func netCode(node *sexp.List) (int, error) {
	child, found := sexp.FindNode(node, "net")
	if !found {
		return 0, nil
	}
	code, err := sexp.Int(child, 1)
	if err != nil {
		return 0, fmt.Errorf("failed to parse net: %w", err)
	}
	return code, nil
}

// isLocked accepts both the bare "locked" flag and (locked yes).
func isLocked(node *sexp.List) bool {
	if sexp.HasSymbol(node, "locked") {
		return true
	}
	if child, found := sexp.FindNode(node, "locked"); found {
		v, _ := sexp.String(child, 1)
		return v == "" || v == "yes"
	}
	return false
}
