package model

import "gorm.io/datatypes"

// VideoResource 学习路径中的视频
type VideoResource struct {
	Title       string `json:"title" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
}

// Category 学习路径分组，按工程方向与难度等级归类
// swagger:model Category
type Category struct {
	BaseModel
	Name                string                             `gorm:"size:200;not null;index" json:"name"`
	Description         string                             `gorm:"type:text" json:"description"`
	EngineeringField    string                             `gorm:"size:100;index" json:"engineeringField"`
	Level               Level                              `gorm:"size:20;not null;index" json:"level"`
	Topics              datatypes.JSONSlice[string]        `json:"topics"`
	RecommendedDuration int                                `gorm:"default:0" json:"recommendedDuration"` // 周
	ResourceURL         string                             `gorm:"size:255" json:"resourceUrl"`
	VideoResources      datatypes.JSONSlice[VideoResource] `json:"videoResources"`
}

func (Category) TableName() string {
	return "categories"
}
