package main

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robknight/plico/pkg/plico"
)

// defaultPuzzle is a classic puzzle with a unique solution.
var defaultPuzzle = "" +
	"530070000" +
	"600195000" +
	"098000060" +
	"800060003" +
	"400803001" +
	"700020006" +
	"060000280" +
	"000419005" +
	"000080079"

var sudokuCmd = &cobra.Command{
	Use:   "sudoku",
	Short: "Solve a 9x9 Sudoku puzzle.",
	Long: "Solve a 9x9 Sudoku puzzle given as 81 digits in row order, with\n" +
		"0 or . for blank cells. Without --puzzle a built-in puzzle is solved.",
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("puzzle")
		puzzle, err := parsePuzzle(input)
		if err != nil {
			log.Fatalf("bad puzzle: %v", err)
		}
		p, err := buildSudokuProblem(puzzle)
		if err != nil {
			log.Fatalf("build: %v", err)
		}

		start := time.Now()
		res := plico.Solve(context.Background(), p, &plico.Options{Tracer: tracer(cmd)})
		elapsed := time.Since(start)

		switch res.Kind() {
		case plico.ResultSolution:
			printGrid(res.Solution())
			fmt.Printf("\nsolved in %v (%d nodes, %d backtracks, %d revisions)\n",
				elapsed, res.Stats.Nodes, res.Stats.Backtracks, res.Stats.Revisions)
		case plico.ResultUnsatisfiable:
			fmt.Println("puzzle has no solution")
			os.Exit(1)
		default:
			log.Fatalf("solve ended with %v", res.Kind())
		}
	},
}

func init() {
	sudokuCmd.Flags().StringP("puzzle", "p", defaultPuzzle, "81-character puzzle, row order, 0 or . for blanks")
}

func parsePuzzle(input string) ([81]int, error) {
	var puzzle [81]int
	if len(input) != 81 {
		return puzzle, fmt.Errorf("expected 81 characters, got %d", len(input))
	}
	for i, ch := range input {
		switch {
		case ch == '0' || ch == '.':
			puzzle[i] = 0
		case ch >= '1' && ch <= '9':
			puzzle[i] = int(ch - '0')
		default:
			return puzzle, fmt.Errorf("cell %d: unexpected character %q", i, ch)
		}
	}
	return puzzle, nil
}

func buildSudokuProblem(puzzle [81]int) (*plico.Problem, error) {
	sem := plico.NewStdSemantics()
	b := plico.NewBuilder(sem)
	for _, given := range puzzle {
		if given == 0 {
			if _, err := b.AddStandard(plico.IntRange(1, 9)); err != nil {
				return nil, err
			}
		} else {
			b.AddVariable(plico.NewDomain(sem.Universe(), plico.Int(given)))
		}
	}
	for i := 0; i < 9; i++ {
		row := make([]plico.VariableID, 9)
		col := make([]plico.VariableID, 9)
		for j := 0; j < 9; j++ {
			row[j] = plico.VariableID(i*9 + j)
			col[j] = plico.VariableID(j*9 + i)
		}
		b.AddConstraint(plico.AllDifferent(row...))
		b.AddConstraint(plico.AllDifferent(col...))
	}
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			box := make([]plico.VariableID, 0, 9)
			for r := 0; r < 3; r++ {
				for c := 0; c < 3; c++ {
					box = append(box, plico.VariableID((br*3+r)*9+(bc*3+c)))
				}
			}
			b.AddConstraint(plico.AllDifferent(box...))
		}
	}
	return b.Seal()
}

func printGrid(sol *plico.Problem) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			v, _ := sol.Value(plico.VariableID(r*9 + c))
			fmt.Printf("%s ", v)
			if c == 2 || c == 5 {
				fmt.Print("| ")
			}
		}
		fmt.Println()
		if r == 2 || r == 5 {
			fmt.Println("------+-------+------")
		}
	}
}
