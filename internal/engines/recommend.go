package engines

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/23bam037-tech/HITHESH-P-H/internal/llm"
	"github.com/23bam037-tech/HITHESH-P-H/internal/prompts"
	"github.com/23bam037-tech/HITHESH-P-H/internal/types"
)

// RecommendationEngine ranks career paths for a profile using grounded search
type RecommendationEngine struct {
	client llm.Client
}

// NewRecommendationEngine creates a recommendation engine on the given client
func NewRecommendationEngine(client llm.Client) *RecommendationEngine {
	return &RecommendationEngine{client: client}
}

// Recommend returns career recommendations ordered by fit score, highest first.
// An empty list is a valid result.
func (e *RecommendationEngine) Recommend(ctx context.Context, profile types.Profile) ([]types.CareerRecommendation, error) {
	const op = "recommend careers"

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}

	template := prompts.MustGet(prompts.EnginesFile, "recommend-careers")
	prompt := prompts.Format(template, map[string]string{
		"Profile":  string(profileJSON),
		"Location": profile.Location,
	})

	recs, err := call[[]types.CareerRecommendation](ctx, e.client, op, llm.Request{
		Prompt:   prompt,
		Tier:     llm.TierStandard,
		Schema:   RecommendationsShape(),
		Grounded: true,
	})
	if err != nil {
		return nil, err
	}

	for i := range recs {
		if err := recs[i].Validate(); err != nil {
			return nil, shapeError(op, err)
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].FitScore > recs[j].FitScore
	})
	return recs, nil
}
