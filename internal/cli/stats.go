package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sproutsim/sprout/pkg/graph"
)

func newStatsCmd() *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats <snapshot.json>",
		Short: "Summarize an exported snapshot file",
		Long: `Stats reads a JSON snapshot produced by "sprout run" and prints summary
statistics: module and contribution totals, the depth distribution, and the
highest-reward modules.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := graph.ReadFile(args[0])
			if err != nil {
				return err
			}

			s := summarize(snap)
			printKeyValue("modules", fmt.Sprint(s.Modules))
			printKeyValue("max depth", fmt.Sprint(s.MaxDepth))
			printKeyValue("contributions", fmt.Sprint(s.Contributions))
			printKeyValue("total x", fmt.Sprintf("%.4f", s.TotalX))
			printKeyValue("total reward", fmt.Sprintf("%.4f", s.TotalReward))
			printDepthHistogram(snap.DepthHistogram())

			fmt.Println(StyleTitle.Render("top modules by reward"))
			for _, n := range topByReward(snap, top) {
				fmt.Printf("  %s  reward=%.4f  x=%.4f  c=%d  depth=%d\n",
					StyleValue.Render(n.Label), n.Reward, n.X, n.C, n.Depth)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "number of top-reward modules to list")
	return cmd
}

// summary aggregates whole-tree statistics from a snapshot.
type summary struct {
	Modules       int
	MaxDepth      int
	Contributions int
	TotalX        float64
	TotalReward   float64
}

func summarize(snap graph.Snapshot) summary {
	s := summary{Modules: len(snap.Nodes)}
	for _, n := range snap.Nodes {
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		s.Contributions += n.C
		s.TotalX += n.X
		s.TotalReward += n.Reward
	}
	return s
}

// topByReward returns up to n nodes sorted by descending reward, breaking
// ties by ID for stable output.
func topByReward(snap graph.Snapshot, n int) []graph.Node {
	nodes := make([]graph.Node, len(snap.Nodes))
	copy(nodes, snap.Nodes)
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Reward != nodes[j].Reward {
			return nodes[i].Reward > nodes[j].Reward
		}
		return nodes[i].ID < nodes[j].ID
	})
	if n > len(nodes) {
		n = len(nodes)
	}
	return nodes[:n]
}
