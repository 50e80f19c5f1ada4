package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type EngineeringField string

const (
	CivilEngineering         EngineeringField = "Civil Engineering"
	MechanicalEngineering    EngineeringField = "Mechanical Engineering"
	ElectricalEngineering    EngineeringField = "Electrical Engineering"
	ElectronicsCommunication EngineeringField = "Electronics and Communication"
	ComputerScience          EngineeringField = "Computer Science"
	InformationTechnology    EngineeringField = "Information Technology"
	ChemicalEngineering      EngineeringField = "Chemical Engineering"
)

var EngineeringFields = []EngineeringField{
	CivilEngineering,
	MechanicalEngineering,
	ElectricalEngineering,
	ElectronicsCommunication,
	ComputerScience,
	InformationTechnology,
	ChemicalEngineering,
}

func (f EngineeringField) Valid() bool {
	for _, v := range EngineeringFields {
		if v == f {
			return true
		}
	}
	return false
}

type Level string

const (
	Beginner     Level = "beginner"
	Intermediate Level = "intermediate"
	Expert       Level = "expert"
)

// Levels 按难度递增排列
var Levels = []Level{Beginner, Intermediate, Expert}

func (l Level) Valid() bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}

// Next 返回下一难度，已是最高级时 ok 为 false
func (l Level) Next() (Level, bool) {
	current := Level(strings.ToLower(string(l)))
	for i, v := range Levels {
		if v == current && i < len(Levels)-1 {
			return Levels[i+1], true
		}
	}
	return "", false
}

// Question 单选题，CorrectAnswer 为 Options 的下标
// swagger:model Question
type Question struct {
	QuestionText  string   `json:"questionText" binding:"required"`
	Options       []string `json:"options" binding:"len=4,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
}

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title            string                        `gorm:"size:255;not null" json:"title"`
	EngineeringField EngineeringField              `gorm:"size:64;not null;index" json:"engineeringField"`
	Level            Level                         `gorm:"size:20;not null" json:"level"`
	Duration         int                           `gorm:"not null" json:"duration"` // Minutes
	Questions        datatypes.JSONSlice[Question] `json:"questions"`
	CreatedBy        uint                          `gorm:"index;not null" json:"createdBy"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// StudentQuestion 学生端题目视图，不含正确答案
type StudentQuestion struct {
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

// StudentAssessment 学生端测评视图
// swagger:model StudentAssessment
type StudentAssessment struct {
	ID               uint              `json:"id"`
	Title            string            `json:"title"`
	EngineeringField EngineeringField  `json:"engineeringField"`
	Level            Level             `json:"level"`
	Duration         int               `json:"duration"`
	Questions        []StudentQuestion `json:"questions"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// ForStudent 去掉正确答案后的测评
func (a *Assessment) ForStudent() StudentAssessment {
	qs := make([]StudentQuestion, len(a.Questions))
	for i, q := range a.Questions {
		qs[i] = StudentQuestion{QuestionText: q.QuestionText, Options: q.Options}
	}
	return StudentAssessment{
		ID:               a.ID,
		Title:            a.Title,
		EngineeringField: a.EngineeringField,
		Level:            a.Level,
		Duration:         a.Duration,
		Questions:        qs,
		CreatedAt:        a.CreatedAt,
	}
}
