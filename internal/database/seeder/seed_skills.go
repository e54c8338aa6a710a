package seeder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"skill-match/internal/docstore"
	"skill-match/internal/domain/skill"
	"skill-match/internal/repository"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// skillNamespace scopes derived skill ids so reseeding the same name
// always yields the same id.
var skillNamespace = uuid.MustParse("7f3c1a52-4c1e-4b8e-9d57-2a9f0d6c1b44")

type SkillSeed struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type skillsFile struct {
	Skills []SkillSeed `yaml:"skills"`
}

// SkillsSeeder upserts Items into the skills store. Items without an id get
// one derived from the normalized name.
type SkillsSeeder struct {
	Items []SkillSeed
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, stores docstore.Handles) error {
	repo := repository.NewDocstoreSkillRepository(stores.Skills)
	for _, it := range s.Items {
		sk, err := it.Skill()
		if err != nil {
			return err
		}
		if err := repo.UpsertSkill(ctx, sk); err != nil {
			return fmt.Errorf("upsert %q: %w", sk.Name, err)
		}
	}
	return nil
}

func (it SkillSeed) Skill() (skill.Skill, error) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		return skill.Skill{}, fmt.Errorf("skill seed without name")
	}
	id := strings.TrimSpace(it.ID)
	if id == "" {
		id = DeriveSkillID(name)
	}
	return skill.New(id, name), nil
}

func DeriveSkillID(name string) string {
	return uuid.NewSHA1(skillNamespace, []byte(skill.NormalizeSearch(name))).String()
}

// LoadSkillsFile reads a YAML document of the form
//
//	skills:
//	  - name: Go
//	  - id: rust
//	    name: Rust
func LoadSkillsFile(path string) ([]SkillSeed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSkills(b)
}

func ParseSkills(b []byte) ([]SkillSeed, error) {
	var f skillsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse skills: %w", err)
	}
	return f.Skills, nil
}
