package domain

import "time"

// Job status values. Transitions are one-way: available -> in_progress,
// then the job leaves the active set when claimed.
const (
	JobStatusAvailable  = "available"
	JobStatusInProgress = "in_progress"
)

// Job type keys.
const (
	JobTypeLocalFreight    = "local_freight"
	JobTypeYardSwitching   = "yard_switching"
	JobTypeMainlineFreight = "mainline_freight"
	JobTypeSpecialFreight  = "special_freight"
)

// ManifestEntry is one car-type line of a job's consist.
type ManifestEntry struct {
	CarType string `json:"car_type"`
	Content string `json:"content"`
	Count   int    `json:"count"`
	Weight  int    `json:"weight"` // tons per car
}

// Job is a freight contract on the job board. A job in progress always
// carries AssignedLocos, StartedAt and CompletesAt; an available job
// carries none of them.
type Job struct {
	ID    string `json:"id"`
	JobID string `json:"job_id"` // human-readable, e.g. LCL-003

	Tier        int    `json:"tier"`
	JobType     string `json:"job_type"`
	FreightType string `json:"freight_type"`
	Description string `json:"description"`

	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DistanceMi  int    `json:"distance_mi"`

	CarCount   int             `json:"car_count"`
	Manifest   []ManifestEntry `json:"manifest"`
	HPRequired int             `json:"hp_required"`

	TimeMinutes int   `json:"time_minutes"`
	Payout      int64 `json:"payout"`
	XPReward    int64 `json:"xp_reward"`

	Status        string     `json:"status"`
	AssignedLocos []string   `json:"assigned_locos,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletesAt   *time.Time `json:"completes_at,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// ManifestCarCount sums the manifest entry counts. For a well-formed
// job this equals CarCount.
func (j *Job) ManifestCarCount() int {
	total := 0
	for _, e := range j.Manifest {
		total += e.Count
	}
	return total
}
