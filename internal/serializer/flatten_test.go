package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T, s Schema) *Composer {
	t.Helper()
	c, err := NewComposer(s)
	require.NoError(t, err)
	return c
}

func TestComposer_Split(t *testing.T) {
	composer := newTestComposer(t, storeProfileSchema())

	payload := Values{
		"email":      "seller@example.com",
		"first_name": "Ada",
		"last_name":  "Byron",
		"phone":      "555-0100",
		"city":       "London",
	}

	own, groups := composer.Split(payload)

	t.Run("moves borrowed fields into their group", func(t *testing.T) {
		assert.Equal(t, Values{
			"email":      "seller@example.com",
			"first_name": "Ada",
			"last_name":  "Byron",
		}, groups["user"])
	})

	t.Run("keeps unclaimed fields with the parent", func(t *testing.T) {
		assert.Equal(t, Values{"phone": "555-0100", "city": "London"}, own)
	})

	t.Run("does not mutate the input payload", func(t *testing.T) {
		assert.Len(t, payload, 5)
		assert.Equal(t, "seller@example.com", payload["email"])
	})

	t.Run("emits an empty sub-payload when no group field is present", func(t *testing.T) {
		own, groups := composer.Split(Values{"city": "London"})
		assert.Equal(t, Values{"city": "London"}, own)
		assert.Empty(t, groups["user"])
		assert.NotNil(t, groups["user"])
	})
}

func TestComposer_SplitCollapseInverse(t *testing.T) {
	// Splitting then re-merging must reconstruct the original flat key set
	// exactly: nothing lost, nothing duplicated, nothing renamed.
	schema := Must(NewSchema(Schema{
		Fields: []string{"a1", "b1", "own1", "a2", "own2", "b2"},
		Flatten: []FlattenGroup{
			{Relation: "alpha", Fields: []string{"a1", "a2"}},
			{Relation: "beta", Fields: []string{"b1", "b2"}},
		},
	}))
	composer := newTestComposer(t, schema)

	payload := Values{"a1": 1, "a2": 2, "b1": 3, "b2": 4, "own1": 5, "own2": 6}

	own, groups := composer.Split(payload)
	merged, err := composer.Collapse(own, groups)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a1", "a2", "b1", "b2", "own1", "own2"}, merged.Fields())
	for k, v := range payload {
		got, ok := merged.Get(k)
		require.True(t, ok, k)
		assert.Equal(t, v, got)
	}
}

func TestComposer_Collapse(t *testing.T) {
	composer := newTestComposer(t, storeProfileSchema())

	own := Values{
		"id":          "p-1",
		"is_self":     false,
		"phone":       "555-0100",
		"city":        "London",
		"address":     "1 Main St",
		"person_type": "natural",
		"seller_type": "individual",
		"products":    []Values{},
	}
	user := Values{
		"email":      "seller@example.com",
		"first_name": "Ada",
		"last_name":  "Byron",
	}

	t.Run("output follows declared field order", func(t *testing.T) {
		flat, err := composer.Collapse(own, map[string]Values{"user": user})
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"email", "first_name", "last_name", "id", "is_self", "phone", "city", "address", "person_type", "seller_type", "products"},
			flat.Fields())
	})

	t.Run("borrowed fields keep their names", func(t *testing.T) {
		flat, err := composer.Collapse(own, map[string]Values{"user": user})
		require.NoError(t, err)
		email, ok := flat.Get("email")
		require.True(t, ok)
		assert.Equal(t, "seller@example.com", email)
	})

	t.Run("missing non-optional relation fails", func(t *testing.T) {
		_, err := composer.Collapse(own, map[string]Values{})
		require.ErrorIs(t, err, ErrMissingRelation)
	})
}

func TestComposer_Collapse_OptionalRelationAbsent(t *testing.T) {
	schema := Must(NewSchema(Schema{
		Fields: []string{"email", "name"},
		Flatten: []FlattenGroup{
			{Relation: "user", Fields: []string{"email"}, Optional: true},
		},
	}))
	composer := newTestComposer(t, schema)

	flat, err := composer.Collapse(Values{"name": "shopless"}, map[string]Values{})
	require.NoError(t, err)

	_, ok := flat.Get("email")
	assert.False(t, ok, "absent optional relation emits no value, not a null")
	assert.Equal(t, []string{"name"}, flat.Fields())
}

func TestComposer_NestedComposition(t *testing.T) {
	// A composer-produced record can feed another composer as one of its
	// related groups; flattening must hold at every level.
	inner := newTestComposer(t, Must(NewSchema(Schema{
		Fields: []string{"email", "city"},
		Flatten: []FlattenGroup{
			{Relation: "user", Fields: []string{"email"}},
		},
	})))
	outer := newTestComposer(t, Must(NewSchema(Schema{
		Fields: []string{"email", "city", "title"},
		Flatten: []FlattenGroup{
			{Relation: "seller", Fields: []string{"email", "city"}},
		},
	})))

	sellerFlat, err := inner.Collapse(
		Values{"city": "London"},
		map[string]Values{"user": {"email": "seller@example.com"}},
	)
	require.NoError(t, err)

	productFlat, err := outer.Collapse(
		Values{"title": "Honey"},
		map[string]Values{"seller": sellerFlat.Map()},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "city", "title"}, productFlat.Fields())
	email, _ := productFlat.Get("email")
	assert.Equal(t, "seller@example.com", email)

	// and the inverse: the outer split hands the inner composer a payload
	// it can split again
	own, groups := outer.Split(productFlat.Map())
	assert.Equal(t, Values{"title": "Honey"}, own)

	sellerOwn, sellerGroups := inner.Split(groups["seller"])
	assert.Equal(t, Values{"city": "London"}, sellerOwn)
	assert.Equal(t, Values{"email": "seller@example.com"}, sellerGroups["user"])
}
