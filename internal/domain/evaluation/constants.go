package evaluation

const (
	KindSelf   = "self"
	KindLeader = "leader"
)

const (
	CategoryTechnical  = "technical"
	CategoryBehavioral = "behavioral"
	CategoryDeliveries = "deliveries"
)

var Categories = []string{CategoryTechnical, CategoryBehavioral, CategoryDeliveries}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)
