// Command mousesim runs the full explore/plan/race cycle against a maze
// definition file and reports the score, without any server or storage.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	dmn "github.com/beka-birhanu/micromouse-api/domain"
	"github.com/beka-birhanu/micromouse-api/service"
	"github.com/beka-birhanu/micromouse-api/sim/maze"
)

func main() {
	budget := flag.Int("budget", service.DefaultTimeBudget, "total action budget across both phases")
	stepCost := flag.Int("step-cost", 1, "planner cost per cell step")
	tracePath := flag.String("trace", "", "write the run trace to this file, one JSON record per line")
	render := flag.Bool("render", false, "print the maze before running")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <maze-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	m, err := maze.ParseFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading maze: %v\n", err)
		os.Exit(1)
	}

	if *render {
		fmt.Println(m)
	}

	result, err := service.Simulate(m, service.SimOptions{
		TimeBudget: *budget,
		StepCost:   *stepCost,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(1)
	}

	if *tracePath != "" {
		if err := writeTrace(*tracePath, result); err != nil {
			fmt.Fprintf(os.Stderr, "writing trace: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("goal found:      %v\n", result.GoalFound)
	fmt.Printf("explore actions: %d\n", result.ExploreActions)
	fmt.Printf("race actions:    %d\n", result.RaceActions)
	fmt.Printf("score:           %.4f\n", result.Score)
}

func writeTrace(path string, result *service.SimResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	seq := 0
	for rec := range result.Trace() {
		entry := dmn.TraceEntry{
			Seq:      seq,
			Phase:    rec.Phase.String(),
			Row:      rec.Row,
			Col:      rec.Col,
			Heading:  rec.Heading.String(),
			Rotation: int(rec.Rotation),
			Movement: rec.Movement,
			Visits:   rec.Visits,
		}
		if err := enc.Encode(entry); err != nil {
			return err
		}
		seq++
	}
	return nil
}
