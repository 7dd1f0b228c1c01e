// Package diagram provides the serialization format for rendered gate
// diagrams.
//
// This package defines the wire format used for layout files, API
// responses, caching and the render history store. A [Layout] records the
// source expression, the layout metrics of its tree and either the placed
// gates and wires of a circuit diagram or the DOT source of a node-link
// diagram:
//
//	l, _ := diagram.ReadLayoutFile("circuit.json")
//	if l.IsCircuit() {
//	    // use l.Nodes and l.Wires
//	} else {
//	    // use l.DOT for Graphviz rendering
//	}
//
// JSON and YAML are both supported; file helpers pick the encoding from the
// extension. The package is the single source of truth for visualization
// constants:
//
//	diagram.VizTypeCircuit   // "circuit"
//	diagram.VizTypeNodelink  // "nodelink"
//	diagram.StyleSimple      // "simple"
//	diagram.StyleDark        // "dark"
package diagram
