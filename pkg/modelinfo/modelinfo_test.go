package modelinfo_test

import (
	"testing"

	"github.com/noteflow/aibridge/pkg/modelinfo"
	"github.com/stretchr/testify/assert"
)

func TestRateSupport_LongestPrefixWins(t *testing.T) {
	// "qwen2.5-7b" must resolve to the qwen2.5 entry, not qwen2.
	got := modelinfo.RateSupport("qwen2.5-7b")

	assert.Equal(t, modelinfo.RatingExcellent, got.Rating)
	assert.True(t, got.Recommended)

	got = modelinfo.RateSupport("qwen2-7b")
	assert.Equal(t, modelinfo.RatingGood, got.Rating)
	assert.False(t, got.Recommended)
}

func TestRateSupport(t *testing.T) {
	tests := []struct {
		model       string
		rating      modelinfo.Rating
		recommended bool
	}{
		{"llama3.1:8b", modelinfo.RatingGood, true},
		{"llama3:70b", modelinfo.RatingGood, false},
		{"llama2:13b", modelinfo.RatingPoor, false},
		{"gemma2:9b", modelinfo.RatingGood, true},
		{"gemma:7b", modelinfo.RatingFair, false},
		{"Mistral-Nemo:12b", modelinfo.RatingGood, true},
		{"tinyllama", modelinfo.RatingPoor, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got := modelinfo.RateSupport(tt.model)

			assert.Equal(t, tt.rating, got.Rating)
			assert.Equal(t, tt.recommended, got.Recommended)
		})
	}
}

func TestRateSupport_UnknownNeverRecommended(t *testing.T) {
	for _, name := range []string{"", "some-custom-finetune", "gpt-oss"} {
		got := modelinfo.RateSupport(name)

		assert.Equal(t, modelinfo.RatingUnknown, got.Rating)
		assert.False(t, got.Recommended)
	}
}

func TestDiagnose_SizeBuckets(t *testing.T) {
	tests := []struct {
		size     string
		context  int
		hasNote  bool
	}{
		{"1.5B", 4096, true},
		{"3B", 4096, true},
		{"7B", 8192, true},
		{"7.6B", 8192, true},
		{"13B", 16384, true},
		{"32B", 32768, true},
		{"70.6B", 32768, true},
		{"4B", modelinfo.DefaultContext, false},  // between buckets
		{"180B", modelinfo.DefaultContext, false}, // above every bucket
		{"335M", modelinfo.DefaultContext, false},
		{"", modelinfo.DefaultContext, false},
		{"garbage", modelinfo.DefaultContext, false},
	}

	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			d := modelinfo.Diagnose("llama3.1:8b", tt.size)

			assert.Equal(t, tt.context, d.RecommendedContext)
			assert.Equal(t, tt.size, d.ParameterSize)
			if tt.hasNote {
				assert.NotEmpty(t, d.Note)
			} else {
				assert.Empty(t, d.Note)
			}
		})
	}
}

func TestDiagnose_CarriesFamilyRating(t *testing.T) {
	d := modelinfo.Diagnose("qwen2.5:7b", "7.6B")

	assert.Equal(t, modelinfo.RatingExcellent, d.Rating)
}
