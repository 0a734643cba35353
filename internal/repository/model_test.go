package repository

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemInput_Validate(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		in      ItemInput
		wantErr bool
	}{
		{"valid", ItemInput{Name: "Lamp", Category: "Home", Price: floatPtr(19.5)}, false},
		{"zero price", ItemInput{Name: "Lamp", Category: "Home", Price: floatPtr(0)}, false},
		{"empty name", ItemInput{Name: "", Category: "Home", Price: floatPtr(1)}, true},
		{"empty category", ItemInput{Name: "Lamp", Price: floatPtr(1)}, true},
		{"nil price", ItemInput{Name: "Lamp", Category: "Home"}, true},
		{"negative price", ItemInput{Name: "Lamp", Category: "Home", Price: floatPtr(-0.01)}, true},
		{"NaN price", ItemInput{Name: "Lamp", Category: "Home", Price: floatPtr(math.NaN())}, true},
		{"infinite price", ItemInput{Name: "Lamp", Category: "Home", Price: floatPtr(math.Inf(1))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate(v)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidItem)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItemInput_ValidateMessageNamesField(t *testing.T) {
	err := ItemInput{Category: "Home", Price: floatPtr(1)}.Validate(validator.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name required")
}

func TestItemInput_DecodeRejectsWrongTypes(t *testing.T) {
	tests := []string{
		`{"name":"X","category":"C","price":"abc"}`,
		`{"name":42,"category":"C","price":1}`,
		`{"name":"X","category":["C"],"price":1}`,
	}
	for _, body := range tests {
		var in ItemInput
		assert.Error(t, json.Unmarshal([]byte(body), &in), body)
	}
}

func TestItem_JSONFieldNames(t *testing.T) {
	raw, err := json.Marshal(Item{ID: 7, Name: "Desk", Category: "Office", Price: 120.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Desk","category":"Office","price":120.5}`, string(raw))
}
