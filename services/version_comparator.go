package services

import (
	"encoding/json"

	"inkwell-cms/models"
)

// CompareVersions reports which fields differ between v1 and v2 and the
// signed size deltas from v1 to v2.
func CompareVersions(v1, v2 models.PostVersion) models.VersionComparison {
	diff := models.FieldDifferences{
		Title:   v1.Title != v2.Title,
		Content: v1.Content != v2.Content,
		Excerpt: v1.Excerpt != v2.Excerpt,
		Status:  v1.Status != v2.Status,
		Tags:    tagsJSON(v1.Tags) != tagsJSON(v2.Tags),
	}

	return models.VersionComparison{
		HasDifferences:     diff.Title || diff.Content || diff.Excerpt || diff.Status || diff.Tags,
		Differences:        diff,
		WordCountDiff:      v2.WordCount - v1.WordCount,
		CharacterCountDiff: v2.CharacterCount - v1.CharacterCount,
	}
}

// tagsJSON treats nil and empty tag lists as equal.
func tagsJSON(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return string(raw)
}
