package gateway

// Envelope is the uniform success payload of every resource endpoint.
// Data is always non-nil so an empty result serializes as [].
type Envelope struct {
	Collection     string           `json:"collection"`
	EnterpriseID   string           `json:"enterpriseId"`
	Count          int              `json:"count"`
	Data           []map[string]any `json:"data"`
	MatchedField   string           `json:"matchedField,omitempty"`
	FieldsTried    []string         `json:"fieldsTried"`
	FirebaseStatus string           `json:"firebase_status"`
	Timestamp      string           `json:"timestamp"`
}

const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
)
