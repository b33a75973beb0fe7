package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RequestMode selects the prompt template and the response shape.
type RequestMode string

const (
	ModeChat RequestMode = "chat"
	ModePlan RequestMode = "plan"
)

func (m RequestMode) String() string { return string(m) }
