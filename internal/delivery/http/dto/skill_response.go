package dto

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SkillNameResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
