package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestion(t *testing.T) {
	_, ok := ValidateQuestion(questionPayload{Label: "T-shirt size", Type: "select", Options: []string{"S", "M", "L"}})
	assert.True(t, ok)

	_, ok = ValidateQuestion(questionPayload{Label: "Age", Type: "number"})
	assert.True(t, ok)

	for name, payload := range map[string]questionPayload{
		"MissingLabel":         {Type: "text"},
		"UnknownType":          {Label: "X", Type: "date"},
		"SelectWithoutOptions": {Label: "Size", Type: "select"},
	} {
		t.Run(name, func(t *testing.T) {
			msg, ok := ValidateQuestion(payload)
			assert.False(t, ok)
			assert.NotEmpty(t, msg)
		})
	}
}
