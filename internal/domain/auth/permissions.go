package auth

const (
	RoleEmployee = "employee"
	RoleLeader   = "leader"
	RoleDirector = "director"
	RoleHRAdmin  = "hr_admin"
)

const (
	PermCareerRead       = "career.read"
	PermCareerWrite      = "career.write"
	PermCareerProgress   = "career.progress"
	PermEvaluationsRead  = "evaluations.read"
	PermEvaluationsWrite = "evaluations.write"
	PermConsensusWrite   = "consensus.write"
	PermPDIRead          = "pdi.read"
	PermPDIWrite         = "pdi.write"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermCareerRead,
	PermCareerWrite,
	PermCareerProgress,
	PermEvaluationsRead,
	PermEvaluationsWrite,
	PermConsensusWrite,
	PermPDIRead,
	PermPDIWrite,
	PermReportsRead,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermCareerRead,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermPDIRead,
	},
	RoleLeader: {
		PermCareerRead,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermConsensusWrite,
		PermPDIRead,
		PermPDIWrite,
		PermReportsRead,
	},
	RoleDirector: {
		PermCareerRead,
		PermCareerProgress,
		PermEvaluationsRead,
		PermConsensusWrite,
		PermPDIRead,
		PermReportsRead,
	},
	RoleHRAdmin: {
		PermCareerRead,
		PermCareerWrite,
		PermCareerProgress,
		PermEvaluationsRead,
		PermEvaluationsWrite,
		PermConsensusWrite,
		PermPDIRead,
		PermPDIWrite,
		PermReportsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
}
