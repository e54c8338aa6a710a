package dto

type MatchUsersRequest struct {
	Skills []string `json:"skills"`
	Policy string   `json:"policy"`
}

type MatchedUserResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Skills []SkillResponse `json:"skills"`
}

type MatchUsersResponse struct {
	Policy   string                `json:"policy"`
	Required []string              `json:"required"`
	Queries  int                   `json:"queries"`
	Users    []MatchedUserResponse `json:"users"`
}
