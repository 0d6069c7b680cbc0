package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robknight/plico/pkg/plico"
)

var australia = struct {
	regions []string
	borders [][2]string
}{
	regions: []string{"WA", "NT", "SA", "Q", "NSW", "V", "T"},
	borders: [][2]string{
		{"WA", "NT"}, {"WA", "SA"}, {"NT", "SA"}, {"NT", "Q"},
		{"SA", "Q"}, {"SA", "NSW"}, {"SA", "V"}, {"Q", "NSW"}, {"NSW", "V"},
	},
}

var colourCmd = &cobra.Command{
	Use:   "colour",
	Short: "Colour the Australian map with three colours.",
	Run: func(cmd *cobra.Command, args []string) {
		sem := plico.NewStdSemantics()
		b := plico.NewBuilder(sem)

		ids := make(map[string]plico.VariableID, len(australia.regions))
		for _, r := range australia.regions {
			ids[r] = b.AddVariable(sem.Symbols("red", "green", "blue"))
		}
		for _, e := range australia.borders {
			b.AddConstraint(plico.NotEqual(ids[e[0]], ids[e[1]]))
		}
		p, err := b.Seal()
		if err != nil {
			log.Fatalf("build: %v", err)
		}

		res := plico.Solve(context.Background(), p, &plico.Options{Tracer: tracer(cmd)})
		if res.Kind() != plico.ResultSolution {
			log.Fatalf("no colouring found: %v", res.Kind())
		}
		sol := res.Solution()
		for _, r := range australia.regions {
			colour, _ := sol.Value(ids[r])
			fmt.Printf("%-4s %s\n", r, colour)
		}
	},
}
