package transport

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MoveStageRequest struct {
	// Stage is one of the pipeline stage names, or null to take the
	// property out of the pipeline.
	Stage *string `json:"stage"`
}

type AssignClientRequest struct {
	ClientID *string `json:"client_id"`
}

type ActivityRequest struct {
	Activity string `json:"activity"`
	Details  string `json:"details"`
}

type BulkAssignRequest struct {
	AgentID     string   `json:"agent_id"`
	PropertyIDs []string `json:"property_ids"`
}

type ClientStatusRequest struct {
	Status string `json:"status"`
}

type SearchRequest struct {
	Query string `json:"query"`
}
