package domain

// Request and response bodies shared by the HTTP API and its clients

// AdminRequest identifies the admin performing an action
type AdminRequest struct {
	AdminID string `json:"adminId" validate:"required,max=100"`
}

// ControlRequest updates one field (Field/Value) or several (Updates).
// Value and Updates carry raw JSON values checked per field.
type ControlRequest struct {
	Field   ControlField           `json:"field,omitempty"`
	Value   interface{}            `json:"value,omitempty"`
	Updates map[string]interface{} `json:"updates,omitempty"`
	AdminID string                 `json:"adminId" validate:"required,max=100"`
}

// HistoryList is returned by the history endpoint, newest first
type HistoryList struct {
	Records []HistoryRecord `json:"records"`
}

// Latest returns the newest record, if any
func (h HistoryList) Latest() (HistoryRecord, bool) {
	if len(h.Records) == 0 {
		return HistoryRecord{}, false
	}
	return h.Records[0], true
}

// ClearHistoryResult reports a purge
type ClearHistoryResult struct {
	Removed int64 `json:"removed"`
}

// EligibleList is returned by the eligibility endpoint
type EligibleList struct {
	Participants []EligibleParticipant `json:"participants"`
	Count        int                   `json:"count"`
	TotalWeight  int                   `json:"totalWeight"`
}

// PhotoList is the public photo universe
type PhotoList struct {
	Photos []Photo `json:"photos"`
}

// ExclusionList is the machine-mode exclusion set
type ExclusionList struct {
	UserIDs []string `json:"userIds"`
}
