package dto

type RegisterUserRequest struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type RegisterUserResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Skills      []string `json:"skills"`
	SkillSetKey string   `json:"skill_set_key"`
}
