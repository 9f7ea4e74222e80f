package main

import (
	"context"

	"github.com/pmehra7/summingbird/internal/config"
	"github.com/pmehra7/summingbird/internal/logger"
	"github.com/pmehra7/summingbird/internal/planner"
	"github.com/pmehra7/summingbird/internal/render"
	"github.com/pmehra7/summingbird/internal/source"
)

type sourceOptions struct {
	git   bool
	depth int
}

// plannedTopology is a loaded topology together with its physical plan.
type plannedTopology struct {
	location string
	topology *config.Topology
	graph    *config.Graph
	plan     *planner.Plan
}

func (p *plannedTopology) document() render.Document {
	return render.NewDocument(p.topology.Name, p.plan, p.graph.IDOf, p.graph.Unreachable)
}

func newLoader(opts sourceOptions, log *logger.Logger) source.Loader {
	if opts.git {
		return source.NewGitLoader(log, opts.depth)
	}
	return source.NewFileLoader(log)
}

// loadAndPlan fetches, validates, materialises and plans the topology at ref.
func loadAndPlan(ctx context.Context, ref string, opts sourceOptions, log *logger.Logger) (*plannedTopology, error) {
	data, location, err := newLoader(opts, log).Load(ctx, ref)
	if err != nil {
		return nil, newCommandError("load topology", ref, err, suggestionFor(err))
	}

	topo, err := config.Parse(data, location)
	if err != nil {
		return nil, newCommandError("parse topology", location, err, suggestionFor(err))
	}

	graph, err := config.Build(topo)
	if err != nil {
		return nil, newCommandError("build graph", location, err, suggestionFor(err))
	}
	for _, id := range graph.Unreachable {
		log.With("operator", id).Warn("operator is not reachable from the terminal and was ignored")
	}

	plan, err := planner.New(log).Plan(graph.Terminal)
	if err != nil {
		return nil, newCommandError("plan topology", location, err, suggestionFor(err))
	}

	log.WithFields(map[string]any{
		"topology": topo.Name,
		"stages":   plan.Size(),
	}).Info("topology planned")

	return &plannedTopology{location: location, topology: topo, graph: graph, plan: plan}, nil
}
