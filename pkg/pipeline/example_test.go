package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gatesketch/pkg/pipeline"
)

func ExampleRunner_Execute() {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	defer runner.Close()

	res, err := runner.Execute(context.Background(), pipeline.Options{
		Expression: "(a+b)c'",
		Formats:    []string{pipeline.FormatJSON},
	})
	if err != nil {
		panic(err)
	}
	fmt.Println("tree:", res.Tree())
	fmt.Println("postfix:", res.Layout.Postfix)
	fmt.Println("columns:", res.Stats.Columns)
	fmt.Printf("size: %dx%d\n", res.Layout.Width, res.Layout.Height)
	// Output:
	// tree: AND(OR(a, b), NOT(c))
	// postfix: ab+c'*
	// columns: [3 2 1]
	// size: 330x500
}
