package dto

import "time"

// SkillRequest payload for skill create/update.
type SkillRequest struct {
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Category string `json:"category"`
}

// ExperienceRequest payload for experience create/update.
type ExperienceRequest struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Description string     `json:"description"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt"`
}
