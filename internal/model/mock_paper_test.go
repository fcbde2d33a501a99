package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedTest_Totals(t *testing.T) {
	test := GeneratedTest{
		Sections: []TestSection{
			{Name: "Section A", Questions: []TestQuestion{{Number: 1, Marks: 1}, {Number: 2, Marks: 1}}},
			{Name: "Section B", Questions: []TestQuestion{{Number: 1, Marks: 5}}},
		},
	}
	assert.Equal(t, 7, test.TotalMarks())
	assert.Equal(t, 3, test.QuestionCount())
}
