package chi

import (
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	gen "github.com/kailas-cloud/esquery/internal/transport/generated"
	healthuc "github.com/kailas-cloud/esquery/internal/usecase/health"
)

func resultSetToDTO(set result.Set) gen.SearchResponse {
	hits := make([]gen.Hit, len(set.Hits))
	for i := range set.Hits {
		h := &set.Hits[i]
		dto := gen.Hit{
			Index:  h.Index(),
			Type:   h.Type(),
			Id:     h.ID(),
			Source: h.Source(),
			Sort:   h.SortValues(),
		}
		if score, ok := h.Score(); ok {
			dto.Score = &score
		}
		hits[i] = dto
	}
	return gen.SearchResponse{
		Took:         set.Took,
		TimedOut:     set.TimedOut,
		Total:        set.Total,
		MaxScore:     set.MaxScore,
		Hits:         hits,
		Aggregations: set.Aggregations,
	}
}

func healthToDTO(report healthuc.Report) gen.HealthResponse {
	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}
	return gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	}
}
