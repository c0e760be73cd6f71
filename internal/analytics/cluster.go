package analytics

import (
	"math"
	"sort"

	"github.com/vvadla/upi-tracker/internal/domain"
)

// Cluster labels for the two-group spending behavior split.
const (
	ClusterLabelHighSpend = "high-spend"
	ClusterLabelRoutine   = "routine"
)

// CategoryCluster is one payee category with its spending features and the
// behavior cluster it was assigned to.
type CategoryCluster struct {
	PayeeType string  `json:"payee_type"`
	Total     float64 `json:"total"`
	Frequency int     `json:"frequency"`
	Cluster   int     `json:"cluster"`
	Label     string  `json:"label"`
}

// ClusterSpendingBehavior groups payee categories by spending behavior with
// k-means over (total amount, transaction count). Initial centroids are the
// categories with the lowest and highest totals (spread evenly for k > 2),
// which keeps the result deterministic across runs on the same ledger.
// Results are ordered by payee type. Fewer categories than k just yields
// one cluster per category.
func ClusterSpendingBehavior(ledger *domain.Ledger, k int) []CategoryCluster {
	if k < 1 {
		k = 2
	}

	totals := CategoryTotals(ledger)
	freqs := make(map[string]int)
	for _, t := range ledger.All() {
		freqs[t.PayeeType]++
	}

	points := make([]CategoryCluster, 0, len(totals))
	for category, total := range totals {
		points = append(points, CategoryCluster{
			PayeeType: category,
			Total:     total,
			Frequency: freqs[category],
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].PayeeType < points[j].PayeeType
	})

	if len(points) == 0 {
		return points
	}
	if k > len(points) {
		k = len(points)
	}

	centroids := seedCentroids(points, k)
	for iter := 0; iter < 50; iter++ {
		changed := false
		for i := range points {
			c := nearestCentroid(points[i], centroids)
			if points[i].Cluster != c {
				points[i].Cluster = c
				changed = true
			}
		}
		centroids = recomputeCentroids(points, k, centroids)
		if !changed && iter > 0 {
			break
		}
	}

	labelClusters(points, centroids)
	return points
}

type centroid struct {
	total float64
	freq  float64
}

// seedCentroids picks k starting centroids spread across the totals range.
func seedCentroids(points []CategoryCluster, k int) []centroid {
	byTotal := make([]CategoryCluster, len(points))
	copy(byTotal, points)
	sort.Slice(byTotal, func(i, j int) bool {
		return byTotal[i].Total < byTotal[j].Total
	})

	centroids := make([]centroid, k)
	for i := 0; i < k; i++ {
		idx := i * (len(byTotal) - 1) / max(k-1, 1)
		centroids[i] = centroid{
			total: byTotal[idx].Total,
			freq:  float64(byTotal[idx].Frequency),
		}
	}
	return centroids
}

func nearestCentroid(p CategoryCluster, centroids []centroid) int {
	best := 0
	bestDist := math.Inf(1)
	for i, c := range centroids {
		dt := p.Total - c.total
		df := float64(p.Frequency) - c.freq
		d := dt*dt + df*df
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func recomputeCentroids(points []CategoryCluster, k int, prev []centroid) []centroid {
	sums := make([]centroid, k)
	counts := make([]int, k)
	for _, p := range points {
		sums[p.Cluster].total += p.Total
		sums[p.Cluster].freq += float64(p.Frequency)
		counts[p.Cluster]++
	}
	next := make([]centroid, k)
	for i := range next {
		if counts[i] == 0 {
			next[i] = prev[i] // empty cluster keeps its old centroid
			continue
		}
		next[i] = centroid{
			total: sums[i].total / float64(counts[i]),
			freq:  sums[i].freq / float64(counts[i]),
		}
	}
	return next
}

// labelClusters names the cluster with the highest centroid total
// "high-spend" and the rest "routine".
func labelClusters(points []CategoryCluster, centroids []centroid) {
	highest := 0
	for i, c := range centroids {
		if c.total > centroids[highest].total {
			highest = i
		}
	}
	for i := range points {
		if points[i].Cluster == highest {
			points[i].Label = ClusterLabelHighSpend
		} else {
			points[i].Label = ClusterLabelRoutine
		}
	}
}
