package model

import "gorm.io/datatypes"

type ResourceType string

const (
	ResourceVideo    ResourceType = "video"
	ResourceArticle  ResourceType = "article"
	ResourceBook     ResourceType = "book"
	ResourceExercise ResourceType = "exercise"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceVideo, ResourceArticle, ResourceBook, ResourceExercise:
		return true
	}
	return false
}

// Resource 管理员为某个测评挂载的学习资源
// swagger:model Resource
type Resource struct {
	BaseModel
	Title        string                      `gorm:"size:255;not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Type         ResourceType                `gorm:"size:20;not null" json:"type"`
	Category     string                      `gorm:"size:100" json:"category"`
	Difficulty   int                         `gorm:"not null;default:1" json:"difficulty"` // 1-5
	URL          string                      `gorm:"size:255;not null" json:"url"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Author       string                      `gorm:"size:100" json:"author"`
	Thumbnail    string                      `gorm:"size:255" json:"thumbnail"`
	Duration     float64                     `gorm:"default:0" json:"duration,omitempty"` // 视频时长（秒）
	AssessmentID uint                        `gorm:"index;not null" json:"assessmentId"`
	Assessment   *Assessment                 `gorm:"foreignKey:AssessmentID" json:"assessment,omitempty"`
	CreatedBy    uint                        `gorm:"index" json:"createdBy"`
}

func (Resource) TableName() string {
	return "resources"
}
