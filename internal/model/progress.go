package model

// UserProgress 每个设备一份的学习进度
type UserProgress struct {
	Streak             int      `json:"streak"`
	Points             int      `json:"points"`
	QuestionsAttempted int      `json:"questionsAttempted"`
	Accuracy           float64  `json:"accuracy"`
	StudyHours         float64  `json:"studyHours"`
	TestsCompleted     int      `json:"testsCompleted"`
	AverageScore       float64  `json:"averageScore"`
	TotalStudyTime     string   `json:"totalStudyTime"`
	Badges             []string `json:"badges"`
	LastActiveDate     string   `json:"lastActiveDate"`
	CreatedAt          string   `json:"createdAt"`
}

func (p UserProgress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// ProgressPatch 浅合并更新，nil 字段保持不变
type ProgressPatch struct {
	Streak             *int      `json:"streak,omitempty"`
	Points             *int      `json:"points,omitempty"`
	QuestionsAttempted *int      `json:"questionsAttempted,omitempty"`
	Accuracy           *float64  `json:"accuracy,omitempty"`
	StudyHours         *float64  `json:"studyHours,omitempty"`
	TestsCompleted     *int      `json:"testsCompleted,omitempty"`
	AverageScore       *float64  `json:"averageScore,omitempty"`
	TotalStudyTime     *string   `json:"totalStudyTime,omitempty"`
	Badges             *[]string `json:"badges,omitempty"`
	LastActiveDate     *string   `json:"lastActiveDate,omitempty"`
	CreatedAt          *string   `json:"createdAt,omitempty"`
}

func (p ProgressPatch) Apply(cur UserProgress) UserProgress {
	if p.Streak != nil {
		cur.Streak = *p.Streak
	}
	if p.Points != nil {
		cur.Points = *p.Points
	}
	if p.QuestionsAttempted != nil {
		cur.QuestionsAttempted = *p.QuestionsAttempted
	}
	if p.Accuracy != nil {
		cur.Accuracy = *p.Accuracy
	}
	if p.StudyHours != nil {
		cur.StudyHours = *p.StudyHours
	}
	if p.TestsCompleted != nil {
		cur.TestsCompleted = *p.TestsCompleted
	}
	if p.AverageScore != nil {
		cur.AverageScore = *p.AverageScore
	}
	if p.TotalStudyTime != nil {
		cur.TotalStudyTime = *p.TotalStudyTime
	}
	if p.Badges != nil {
		cur.Badges = uniqueBadges(*p.Badges)
	}
	if p.LastActiveDate != nil {
		cur.LastActiveDate = *p.LastActiveDate
	}
	if p.CreatedAt != nil {
		cur.CreatedAt = *p.CreatedAt
	}
	return cur
}

// uniqueBadges 去重并保留首次出现的顺序
func uniqueBadges(badges []string) []string {
	out := make([]string, 0, len(badges))
	seen := make(map[string]bool, len(badges))
	for _, b := range badges {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}
