package gate_test

import (
	"fmt"

	"github.com/matzehuels/gatesketch/pkg/gate"
)

func ExampleNew() {
	a, b, c := gate.NewInput("a"), gate.NewInput("b"), gate.NewInput("c")

	and, _ := gate.New(gate.And, b, c)
	or, _ := gate.New(gate.Or, a, and)

	fmt.Println(or)
	fmt.Println("Name:", or.Name())
	fmt.Println("Inputs:", or.NumInputs())
	// Output:
	// OR(a, AND(b, c))
	// Name: a+bc
	// Inputs: 2
}

func ExampleGate_ColumnSizes() {
	a, b, c, d := gate.NewInput("a"), gate.NewInput("b"), gate.NewInput("c"), gate.NewInput("d")
	ab, _ := gate.New(gate.And, a, b)
	cd, _ := gate.New(gate.And, c, d)
	root, _ := gate.New(gate.Or, ab, cd)

	fmt.Println("Depth:", root.Depth())
	fmt.Println("Columns:", root.ColumnSizes())
	fmt.Println("Largest:", root.LargestColumn())
	// Output:
	// Depth: 3
	// Columns: [4 2 1]
	// Largest: 4
}

func ExampleGate_Metrics() {
	a, b := gate.NewInput("a"), gate.NewInput("b")
	and, _ := gate.New(gate.And, a, b)

	m := and.Metrics()
	fmt.Printf("%dx%d seed=%d y=[%d,%d]\n", m.Width, m.Height, m.Seed, m.MinY, m.MaxY)
	// Output:
	// 230x260 seed=200 y=[80,200]
}
