package jobs

const TaskRefreshSummary = "summary:refresh"

type RefreshSummaryPayload struct {
	CollectionID string `json:"collection_id"`
}
