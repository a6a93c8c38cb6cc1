package api

import (
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Kind   domain.EntityKind `json:"kind"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
	Items  []domain.Entity   `json:"items"`
}

type recordErrorDTO struct {
	Index      int    `json:"index"`
	ExternalID string `json:"externalId,omitempty"`
	Error      string `json:"error"`
}

type runDTO struct {
	RoundID      string           `json:"roundId"`
	Source       string           `json:"source"`
	Outcome      domain.Outcome   `json:"outcome"`
	TotalFetched int              `json:"totalFetched"`
	Inserted     int              `json:"inserted"`
	Updated      int              `json:"updated"`
	RecordErrors []recordErrorDTO `json:"recordErrors"`
	Message      string           `json:"message"`
	StartedAt    time.Time        `json:"startedAt"`
	EndedAt      time.Time        `json:"endedAt"`
}

type roundDTO struct {
	ID         string     `json:"id,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	Skipped    bool       `json:"skipped"`
	SkipReason string     `json:"skipReason,omitempty"`
	Results    []runDTO   `json:"results"`
	Error      string     `json:"error,omitempty"`
}

type statusDTO struct {
	LastSync *time.Time `json:"lastSync"`
	Running  bool       `json:"running"`
	Interval string     `json:"interval"`
	NextDue  *time.Time `json:"nextDue"`
	Recent   []runDTO   `json:"recent"`
}

func toRunDTO(r domain.SyncRunResult) runDTO {
	errs := make([]recordErrorDTO, 0, len(r.RecordErrors))
	for _, e := range r.RecordErrors {
		dto := recordErrorDTO{Index: e.Index, ExternalID: e.ExternalID}
		if e.Err != nil {
			dto.Error = e.Err.Error()
		}
		errs = append(errs, dto)
	}
	return runDTO{
		RoundID:      r.RoundID,
		Source:       r.Source,
		Outcome:      r.Outcome,
		TotalFetched: r.TotalFetched,
		Inserted:     r.Inserted,
		Updated:      r.Updated,
		RecordErrors: errs,
		Message:      r.Message,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
	}
}

func toRunDTOs(runs []domain.SyncRunResult) []runDTO {
	out := make([]runDTO, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunDTO(r))
	}
	return out
}

func toRoundDTO(round *domain.RoundResult) roundDTO {
	dto := roundDTO{
		ID:         round.ID,
		Skipped:    round.Skipped,
		SkipReason: round.SkipReason,
		Results:    toRunDTOs(round.Results),
		StartedAt:  timePtr(round.StartedAt),
		EndedAt:    timePtr(round.EndedAt),
	}
	return dto
}

func toStatusDTO(s *domain.SyncStatus) statusDTO {
	dto := statusDTO{
		Running:  s.Running,
		Interval: s.Interval.String(),
		NextDue:  timePtr(s.NextDue),
		Recent:   toRunDTOs(s.Recent),
	}
	if s.Watermark != nil {
		dto.LastSync = timePtr(s.Watermark.LastSync)
	}
	return dto
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
