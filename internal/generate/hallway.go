package generate

import (
	"context"

	"level-layout/internal/gamemap"
	"level-layout/internal/pathfind"

	"golang.org/x/sync/errgroup"
)

// Edge links a parent room to one of its children.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Hallway is a routed corridor between the centres of two connected rooms.
// Cells run from the parent's centre to the child's and may cross either
// endpoint room but no other.
type Hallway struct {
	From int `json:"from"`
	To   int `json:"to"`
	// Cells are room-space points, like PlacedRoom.X and Y. Add the grid's
	// Offset to get grid indices.
	Cells []gamemap.Point `json:"cells"`
	Cost  float64         `json:"cost"`
}

// RouteHallways routes one hallway per graph edge over grid, which is only
// read. Edges with no path are returned in unrouted; that is not an error.
// Both slices follow Edges() order regardless of cfg.Workers. The only error
// is ctx's, when it is cancelled mid-routing.
func RouteHallways(ctx context.Context, graph *RoomGraph, grid *gamemap.Grid, cfg *Config) (hallways []Hallway, unrouted []Edge, err error) {
	cfg = cfg.normalized()
	edges := graph.Edges()
	results := make([]*Hallway, len(edges))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, e := range edges {
		i, e := i, e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = routeEdge(graph, grid, e, cfg.Hallways)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for i, h := range results {
		if h == nil {
			cfg.Logger.Debug("no hallway path", "from", edges[i].From, "to", edges[i].To)
			unrouted = append(unrouted, edges[i])
			continue
		}
		hallways = append(hallways, *h)
	}
	return hallways, unrouted, nil
}

func routeEdge(graph *RoomGraph, grid *gamemap.Grid, e Edge, opts pathfind.Options) *Hallway {
	from, to := graph.Room(e.From), graph.Room(e.To)
	path, ok := pathfind.FindPath(grid.WalkableFor(e.From, e.To), from.Center(), to.Center(), opts)
	if !ok {
		return nil
	}
	return &Hallway{From: e.From, To: e.To, Cells: path.Cells, Cost: path.Cost}
}
