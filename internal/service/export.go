package service

import (
	"fmt"
	"strings"
	"study_scholar_backend/internal/model"
	"study_scholar_backend/internal/util"
	"time"
)

var (
	headerRule  = strings.Repeat("=", 80)
	sectionRule = strings.Repeat("-", 80)
)

// RenderTestText 试卷的纯文本版本，用于下载
func RenderTestText(test *model.GeneratedTest) string {
	var b strings.Builder

	b.WriteString(test.Title + "\n")
	fmt.Fprintf(&b, "Subject: %s | Class: %s | Chapter: %s\n", test.Subject, test.ClassName, test.Chapter)
	fmt.Fprintf(&b, "Maximum Marks: %d\n", test.MaxMarks)
	fmt.Fprintf(&b, "Generated: %s\n", displayDate(test.GeneratedAt))
	fmt.Fprintf(&b, "Topics: %s\n", test.Topics)
	b.WriteString(headerRule + "\n\n")

	for _, section := range test.Sections {
		b.WriteString(section.Name + "\n")
		b.WriteString(sectionRule + "\n\n")

		for _, q := range section.Questions {
			fmt.Fprintf(&b, "Q%d. %s [%d marks]\n", q.Number, q.Question, q.Marks)
			for _, opt := range q.Options {
				b.WriteString("   " + opt + "\n")
			}
			if q.Diagram != "" {
				fmt.Fprintf(&b, "   [Diagram: %s]\n", q.Diagram)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func displayDate(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format(util.DateFormat)
}

// ExportFileName 由标题生成安全的文件名
func ExportFileName(test *model.GeneratedTest) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, test.Title)
	if strings.Trim(name, "_") == "" {
		name = "mock_test"
	}
	return name + ".txt"
}
