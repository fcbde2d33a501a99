package model

// GeneratedTest 一份由远程服务生成并保存在本地的模拟试卷
type GeneratedTest struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Subject     string                 `json:"subject"`
	ClassName   string                 `json:"className"`
	Chapter     string                 `json:"chapter"`
	Topics      string                 `json:"topics"`
	MaxMarks    int                    `json:"maxMarks"`
	Sections    []TestSection          `json:"sections"`
	GeneratedAt string                 `json:"generatedAt"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func (t GeneratedTest) GetID() string {
	return t.ID
}

// TotalMarks 所有题目分值之和
func (t GeneratedTest) TotalMarks() int {
	total := 0
	for _, s := range t.Sections {
		for _, q := range s.Questions {
			total += q.Marks
		}
	}
	return total
}

func (t GeneratedTest) QuestionCount() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Questions)
	}
	return n
}

type TestSection struct {
	Name      string         `json:"name"`
	Questions []TestQuestion `json:"questions"`
}

type TestQuestion struct {
	Number        int      `json:"number"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Marks         int      `json:"marks"`
	Diagram       string   `json:"diagram,omitempty"`
}

// GenerateTestRequest 出卷请求，同时也是远程服务的请求体
type GenerateTestRequest struct {
	Subject   string `json:"subject"`
	ClassName string `json:"className"`
	Chapter   string `json:"chapter"`
	Topics    string `json:"topics"`
	MaxMarks  int    `json:"maxMarks"`
}

// TestData 远程服务返回的试卷内容
type TestData struct {
	Title    string        `json:"title,omitempty"`
	Sections []TestSection `json:"sections"`
}

// GenerationEnvelope 远程服务的响应包
type GenerationEnvelope struct {
	Success  bool                   `json:"success"`
	TestData *TestData              `json:"testData,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Error    string                 `json:"error,omitempty"`
}
