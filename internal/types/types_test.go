package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntityTypes(t *testing.T) {
	all := ListEntityTypes()
	require.Len(t, all, 32)
	assert.Equal(t, CreditCard, all[0])
	assert.Contains(t, all, SSN)
	assert.Contains(t, all, TaxID)

	seen := map[string]bool{}
	for _, l := range all {
		assert.False(t, seen[l], "duplicate label %s", l)
		seen[l] = true
	}
}

func TestCategories_CopyIsIndependent(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 7)
	cats[0].Labels[0] = "MUTATED"
	assert.Equal(t, CreditCard, Categories()[0].Labels[0])
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, "Healthcare", CategoryOf(NPI))
	assert.Equal(t, "Vehicle", CategoryOf(VIN))
	assert.Equal(t, "", CategoryOf("CUSTOM_LABEL"))
}

func TestEntity_WithConfidenceCopies(t *testing.T) {
	e := Entity{Text: "x", Label: SSN, Confidence: 0.8}
	e2 := e.WithConfidence(0.9)
	assert.Equal(t, 0.8, e.Confidence)
	assert.Equal(t, 0.9, e2.Confidence)
}

func TestEntity_Overlaps(t *testing.T) {
	a := Entity{Start: 0, End: 5}
	assert.True(t, a.Overlaps(Entity{Start: 4, End: 8}))
	assert.False(t, a.Overlaps(Entity{Start: 5, End: 8}))
	assert.True(t, a.Overlaps(Entity{Start: 1, End: 2}))
}

func TestSerialize_RoundsConfidence(t *testing.T) {
	s := Entity{Text: "a@b.co", Label: Email, Start: 3, End: 9, Confidence: 0.932412345}.Serialize()
	assert.Equal(t, "EMAIL", s.Type)
	assert.Equal(t, 0.9324, s.Confidence)
	assert.Equal(t, 3, s.Start)
	assert.Equal(t, 9, s.End)
}
