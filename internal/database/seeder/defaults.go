package seeder

var DefaultSkills = []SkillSeed{
	{Name: "Go"},
	{Name: "Rust"},
	{Name: "Ruby on Rails"},
	{Name: "JavaScript"},
	{Name: "TypeScript"},
	{Name: "React"},
	{Name: "PostgreSQL"},
	{Name: "Redis"},
	{Name: "Docker"},
	{Name: "Kubernetes"},
	{Name: "AWS"},
	{Name: "GCP"},
}

func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{Items: DefaultSkills},
	}
}
