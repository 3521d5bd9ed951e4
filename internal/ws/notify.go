package ws

import (
	"encoding/json"
	"sort"
	"time"

	"talentbridge/internal/domain/job"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventApplicationsRanked = "applications_ranked"

type RankingEntry struct {
	ApplicationID        uuid.UUID `json:"application_id"`
	CandidateID          uuid.UUID `json:"candidate_id"`
	Ranking              int       `json:"ranking"`
	SkillMatchPercentage int       `json:"skill_match_percentage"`
}

type ApplicationsRankedEvent struct {
	Type       string         `json:"type"`
	JobID      string         `json:"job_id"`
	Applicants int            `json:"applicants"`
	Rankings   []RankingEntry `json:"rankings"`
	Timestamp  string         `json:"timestamp"`
}

func JobTopic(jobID uuid.UUID) string {
	return "job:" + jobID.String()
}

// ApplicationsRanked pushes a job's new applicant order, best first, to the
// clients watching that job.
func (h *Hub) ApplicationsRanked(jobID uuid.UUID, apps []job.Application) {
	if h == nil || jobID == uuid.Nil {
		return
	}

	rankings := make([]RankingEntry, 0, len(apps))
	for _, a := range apps {
		rankings = append(rankings, RankingEntry{
			ApplicationID:        a.ID,
			CandidateID:          a.CandidateID,
			Ranking:              a.Ranking,
			SkillMatchPercentage: a.SkillMatchPercentage,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].Ranking < rankings[j].Ranking })

	evt := ApplicationsRankedEvent{
		Type:       EventApplicationsRanked,
		JobID:      jobID.String(),
		Applicants: len(rankings),
		Rankings:   rankings,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("ws encode failed", zap.String("event", EventApplicationsRanked), zap.Error(err))
		return
	}
	h.Broadcast(JobTopic(jobID), b)
}
