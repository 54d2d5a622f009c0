package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/burndown/roadmap-api/pkg/config"
	"github.com/burndown/roadmap-api/pkg/models"
	"github.com/burndown/roadmap-api/pkg/planner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := run(os.Args[1:], os.Stdout, planner.New(cfg.Palette)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, pl *planner.Planner) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	in := fs.String("in", "", "path to a JSON file with projects and team_members")
	todayFlag := fs.String("today", "", "plan as of this date (YYYY-MM-DD), defaults to the system clock")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("usage: plan -in roadmap.json [-today YYYY-MM-DD]")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	var input models.RoadmapInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("parse %s: %w", *in, err)
	}

	today := input.Today
	if *todayFlag != "" {
		if today = models.ParseDate(*todayFlag); today == nil {
			return fmt.Errorf("invalid -today %q", *todayFlag)
		}
	}

	var rm models.Roadmap
	if today != nil {
		rm = pl.BuildAt(input.Projects, input.TeamMembers, *today)
	} else {
		rm = pl.Build(input.Projects, input.TeamMembers)
	}
	if err := planner.CheckHorizon(rm); err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(rm, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}
