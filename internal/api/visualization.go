package api

import "context"

// ExtractionTrends fetches the per-shot derived metric series.
func (c *Client) ExtractionTrends(ctx context.Context) ([]TrendPoint, error) {
	var points []TrendPoint
	if err := c.get(ctx, "/visualization/extraction-trends", &points); err != nil {
		return nil, err
	}
	return points, nil
}

// ComparativeAnalysis fetches the per-bean averaged metrics.
func (c *Client) ComparativeAnalysis(ctx context.Context) ([]BeanComparison, error) {
	var comparisons []BeanComparison
	if err := c.get(ctx, "/visualization/comparative-analysis", &comparisons); err != nil {
		return nil, err
	}
	return comparisons, nil
}

// OptimalParameters fetches the optimal-shot thresholds and counts.
func (c *Client) OptimalParameters(ctx context.Context) (*OptimalParameters, error) {
	var params OptimalParameters
	if err := c.get(ctx, "/visualization/optimal-parameters", &params); err != nil {
		return nil, err
	}
	return &params, nil
}

// SummaryStats fetches the dashboard overview payload.
func (c *Client) SummaryStats(ctx context.Context) (*SummaryStats, error) {
	var stats SummaryStats
	if err := c.get(ctx, "/visualization/summary-stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
