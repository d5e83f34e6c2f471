package cache

import (
	"fmt"
	"strings"
)

const (
	GlobalKeyPrefix = "skillsage"
	bankObjectType  = "bank"
)

// BankKey builds the redis key for one question bank partition. Skills are
// free text, so the label is normalized (lowercased, spaces collapsed to
// hyphens) to keep "Machine Learning" and "machine learning" in the same
// partition.
func BankKey(skill string, bucket int) string {
	return strings.Join([]string{
		GlobalKeyPrefix,
		bankObjectType,
		NormalizeSkill(skill),
		fmt.Sprintf("%d", bucket),
	}, ":")
}

// NormalizeSkill canonicalizes a free-text skill label for use in keys.
func NormalizeSkill(skill string) string {
	normalized := strings.ToLower(strings.TrimSpace(skill))
	return strings.Join(strings.Fields(normalized), "-")
}
