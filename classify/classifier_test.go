package classify

import (
	"testing"

	"github.com/researchaccelerator-hub/youtube-classifier/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesFixedOrder(t *testing.T) {
	assert.Equal(t, []string{"medical", "legal", "daily_surprising"}, CategoryNames())
	for _, c := range Categories {
		assert.NotEmpty(t, c.Keywords, "category %s has no keywords", c.Name)
	}
}

func TestCountCategoryKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
		want     int
	}{
		{
			name:     "repeated keyword counts non-overlapping occurrences",
			text:     "病気について。病気は怖い。",
			category: "medical",
			want:     2,
		},
		{
			name:     "multiple keywords sum",
			text:     "警察が捜査し、容疑者を逮捕した",
			category: "legal",
			want:     4,
		},
		{
			name:     "no match",
			text:     "今日はいい天気です",
			category: "medical",
			want:     0,
		},
		{
			name:     "unknown category counts zero",
			text:     "病気",
			category: "sports",
			want:     0,
		},
		{
			name:     "empty text",
			text:     "",
			category: "medical",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountCategoryKeywords(tt.text, tt.category))
		})
	}
}

func TestContainsCategoryKeyword(t *testing.T) {
	assert.True(t, ContainsCategoryKeyword("奇跡の生還", "daily_surprising"))
	assert.False(t, ContainsCategoryKeyword("普通の一日", "daily_surprising"))
	assert.False(t, ContainsCategoryKeyword("奇跡", "sports"))
}

func TestAnalyzeCategory_Density(t *testing.T) {
	// 2 keyword occurrences in a 120s video: 1.0 matches per minute.
	rec := &model.ClassifiedRecord{
		VideoID:     "v1",
		Metadata:    &model.VideoMetadata{VideoID: "v1", DurationSeconds: 120},
		Transcript:  "病気になった。そして病気が治った。",
		DurationMin: 2,
	}

	score, err := AnalyzeCategory(rec, "medical", DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 2, score.WordCount)
	assert.Equal(t, 1.0, score.PerMin)
	assert.True(t, score.Matched)
}

func TestAnalyzeCategory_RoundsToThreeDecimals(t *testing.T) {
	// 1 occurrence over 3 minutes: 1/3 rounding to 0.333.
	rec := &model.ClassifiedRecord{
		Metadata:    &model.VideoMetadata{DurationSeconds: 180},
		Transcript:  "病気",
		DurationMin: 3,
	}

	score, err := AnalyzeCategory(rec, "medical", DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, 0.333, score.PerMin)
	assert.False(t, score.Matched)
}

func TestAnalyzeCategory_InvalidCategory(t *testing.T) {
	rec := &model.ClassifiedRecord{Transcript: "病気"}
	_, err := AnalyzeCategory(rec, "sports", DefaultThreshold)
	assert.Error(t, err)
}

func TestAnalyzeCategory_TitleFlag(t *testing.T) {
	rec := &model.ClassifiedRecord{
		Metadata:    &model.VideoMetadata{Title: "大病院の秘密", DurationSeconds: 60},
		Transcript:  "キーワードなし",
		DurationMin: 1,
	}

	score, err := AnalyzeCategory(rec, "medical", DefaultThreshold)
	require.NoError(t, err)
	// Title containment is independent of the transcript score.
	assert.True(t, score.InTitle)
	assert.Equal(t, 0, score.WordCount)
}

func TestClassify_ZeroDurationNeverMatches(t *testing.T) {
	rec := &model.ClassifiedRecord{
		VideoID:    "v1",
		Metadata:   &model.VideoMetadata{VideoID: "v1", DurationSeconds: 0},
		Transcript: "病気 病気 病気 逮捕 逮捕",
	}

	require.NoError(t, Classify([]*model.ClassifiedRecord{rec}, DefaultThreshold))

	for _, name := range CategoryNames() {
		assert.Equal(t, 0.0, rec.Scores[name].PerMin, "category %s", name)
		assert.False(t, rec.Scores[name].Matched, "category %s", name)
	}
	assert.Equal(t, model.PrimaryNone, rec.PrimaryCategory)
}

func TestClassify_NoMatchesYieldsNone(t *testing.T) {
	rec := &model.ClassifiedRecord{
		VideoID:    "v1",
		Metadata:   &model.VideoMetadata{VideoID: "v1", DurationSeconds: 300},
		Transcript: "まったく関係のないテキスト",
	}

	require.NoError(t, Classify([]*model.ClassifiedRecord{rec}, DefaultThreshold))
	assert.Equal(t, model.PrimaryNone, rec.PrimaryCategory)
}

func TestClassify_TieGoesToFirstDefinedCategory(t *testing.T) {
	// One medical keyword and one legal keyword in the same 60s video tie at
	// 1.0 per minute each; medical is defined first.
	rec := &model.ClassifiedRecord{
		VideoID:    "v1",
		Metadata:   &model.VideoMetadata{VideoID: "v1", DurationSeconds: 60},
		Transcript: "病気と逮捕",
	}

	require.NoError(t, Classify([]*model.ClassifiedRecord{rec}, DefaultThreshold))
	assert.Equal(t, rec.Scores["medical"].PerMin, rec.Scores["legal"].PerMin)
	assert.Equal(t, "medical", rec.PrimaryCategory)
}

func TestClassify_PrimaryIsMaxDensity(t *testing.T) {
	rec := &model.ClassifiedRecord{
		VideoID:    "v1",
		Metadata:   &model.VideoMetadata{VideoID: "v1", DurationSeconds: 60},
		Transcript: "病気のことより、逮捕と裁判と判決の話",
	}

	require.NoError(t, Classify([]*model.ClassifiedRecord{rec}, DefaultThreshold))
	assert.Equal(t, "legal", rec.PrimaryCategory)
}

func TestClassify_NilMetadata(t *testing.T) {
	rec := &model.ClassifiedRecord{
		VideoID:    "v1",
		Transcript: "病気",
	}

	require.NoError(t, Classify([]*model.ClassifiedRecord{rec}, DefaultThreshold))
	// Without metadata there is no duration, so nothing can match.
	assert.Equal(t, 1, rec.Scores["medical"].WordCount)
	assert.Equal(t, 0.0, rec.Scores["medical"].PerMin)
	assert.Equal(t, model.PrimaryNone, rec.PrimaryCategory)
}
