package session

// Inbound message types.
const (
	MsgToggle   = "toggle"
	MsgType     = "type"
	MsgSelect   = "select"
	MsgRemove   = "remove"
	MsgQuery    = "query"
	MsgRegister = "register"
)

// Outbound event types.
const (
	EventSkills         = "skills"
	EventSelection      = "selection"
	EventResults        = "results"
	EventError          = "error"
	EventRegistered     = "registered"
	EventUserRegistered = "user_registered"
	EventBusy           = "busy"
)

// Form names a skill picker inside a session. Each form keeps its own
// selection.
type Form string

const (
	FormQuery    Form = "query"
	FormRegister Form = "register"
)

type Message struct {
	Type    string `json:"type"`
	Form    Form   `json:"form,omitempty"`
	Term    string `json:"term,omitempty"`
	SkillID string `json:"skill_id,omitempty"`
	Policy  string `json:"policy,omitempty"`
	Name    string `json:"name,omitempty"`
}

type Event struct {
	Type    string `json:"type"`
	Form    Form   `json:"form,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type SkillView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SkillsData struct {
	Term   string      `json:"term"`
	Skills []SkillView `json:"skills"`
}

type SelectionData struct {
	State  string      `json:"state"`
	Skills []SkillView `json:"skills"`
}

type UserView struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Skills []SkillView `json:"skills"`
}

type ResultsData struct {
	Policy  string     `json:"policy"`
	Queries int        `json:"queries"`
	Users   []UserView `json:"users"`
}

type RegisteredData struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Skills      []string `json:"skills"`
	SkillSetKey string   `json:"skill_set_key"`
}

type BusyData struct {
	Busy bool `json:"busy"`
}
