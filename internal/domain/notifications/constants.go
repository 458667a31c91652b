package notifications

const (
	TypeProgressionExecuted = "progression_executed"
	TypeTrackAssigned       = "track_assigned"
	TypeEvaluationSubmitted = "evaluation_submitted"
	TypeConsensusCompleted  = "consensus_completed"
	TypePDIAssigned         = "pdi_assigned"
	TypeProgressionEligible = "progression_eligible"
)
