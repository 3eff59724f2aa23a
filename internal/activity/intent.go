package activity

import "strings"

// StatusExpired is the only status value that changes the list mode.
const StatusExpired = "expiradas"

// Kind identifies which upstream operation a request resolves to.
type Kind int

const (
	KindPending Kind = iota
	KindExpired
	KindDetail
)

func (k Kind) String() string {
	switch k {
	case KindExpired:
		return "expired"
	case KindDetail:
		return "detail"
	default:
		return "pending"
	}
}

// Intent is the resolved operation for one request.
type Intent struct {
	Kind   Kind
	TaskID string
}

// Query holds the inbound parameters the gateway reads.
type Query struct {
	ID     string `form:"id" json:"id,omitempty"`
	Status string `form:"status" json:"status,omitempty"`
}

// Select resolves an intent. A non-empty id always wins; any status other than
// StatusExpired falls back to the pending list.
func Select(q Query) Intent {
	if id := strings.TrimSpace(q.ID); id != "" {
		return Intent{Kind: KindDetail, TaskID: id}
	}
	if q.Status == StatusExpired {
		return Intent{Kind: KindExpired}
	}
	return Intent{Kind: KindPending}
}
