package reference

import (
	"testing"

	"symptomcheck/domain/core/valueobjects"

	"github.com/stretchr/testify/assert"
)

func TestDescribe_KnownCondition(t *testing.T) {
	detail := Describe("Migraine")

	assert.Equal(t, "Migraine", detail.Name)
	assert.Equal(t, valueobjects.DangerModerate, detail.DangerLevel)
	assert.False(t, detail.Contagious)
	assert.Contains(t, detail.Description, "throbbing pain")
	assert.Equal(t, valueobjects.ColorClassOrange, detail.ColorClass())
}

func TestDescribe_Fallback(t *testing.T) {
	for _, name := range []string{"Unable to determine", "Dragon Pox", ""} {
		t.Run(name, func(t *testing.T) {
			detail := Describe(name)
			assert.Equal(t, name, detail.Name)
			assert.Equal(t, UnknownConditionDescription, detail.Description)
			assert.Equal(t, valueobjects.DangerUnknown, detail.DangerLevel)
			assert.False(t, detail.Contagious)
			assert.Equal(t, valueobjects.ColorClassGray, detail.ColorClass())
		})
	}
}

func TestDescribe_IsPure(t *testing.T) {
	assert.Equal(t, Describe("Flu"), Describe("Flu"))
	assert.Equal(t, Describe("nope"), Describe("nope"))
}

func TestConditions_ReturnsCopy(t *testing.T) {
	all := Conditions()
	assert.Len(t, all, 23)

	all[0].Description = "changed"
	assert.NotEqual(t, "changed", Describe(all[0].Name).Description)
}

func TestEveryRuleDiagnosisHasDetail(t *testing.T) {
	for _, rule := range Rules() {
		for _, d := range rule.Diagnoses {
			assert.True(t, IsKnownCondition(d), "keyword %q references unknown condition %q", rule.Keyword, d)
		}
	}
}

func TestDescribe_DescriptionIsVerbatim(t *testing.T) {
	detail := Describe("Muscle Strain")

	assert.Equal(t, "An injury to a muscle or a tendon — the fibrous tissue that connects muscles to bones. "+
		"Minor injuries may only overstretch a muscle or tendon, while more severe injuries may involve partial or complete tears.",
		detail.Description)
	assert.Equal(t, valueobjects.DangerLow, detail.DangerLevel)
}
