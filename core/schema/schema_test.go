package schema

import (
	"encoding/json"
	"regexp"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkObjects visits every object schema reachable from s.
func walkObjects(s *Schema, path string, visit func(path string, s *Schema)) {
	if s == nil {
		return
	}
	if s.Type == "object" {
		visit(path, s)
	}
	for name, prop := range s.Properties {
		walkObjects(prop, path+"."+name, visit)
	}
	walkObjects(s.Items, path+"[]", visit)
}

func TestPlannerResponse_EveryObjectIsClosedAndFullyRequired(t *testing.T) {
	objects := 0
	walkObjects(PlannerResponse(), "$", func(path string, s *Schema) {
		objects++
		require.NotNil(t, s.AdditionalProperties, path)
		assert.False(t, *s.AdditionalProperties, path)

		props := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			props = append(props, name)
		}
		required := append([]string(nil), s.Required...)
		sort.Strings(props)
		sort.Strings(required)
		assert.Equal(t, props, required, path)
	})
	// envelope, itinerary, day, activity, cost range
	assert.Equal(t, 5, objects)
}

func TestPlannerResponse_ActivityContract(t *testing.T) {
	activity := PlannerResponse().
		Properties["itinerary"].
		Properties["days"].Items.
		Properties["activities"].Items

	assert.ElementsMatch(t,
		[]string{"time", "duration", "title", "description", "location", "estimatedCost", "bookingUrl"},
		activity.Required)

	duration := activity.Properties["duration"]
	assert.Equal(t, "integer", duration.Type)
	assert.Equal(t, 15, *duration.Minimum)
	assert.Equal(t, 480, *duration.Maximum)

	cost := activity.Properties["estimatedCost"]
	assert.Equal(t, "integer", cost.Type)
	assert.Equal(t, 0, *cost.Minimum)
	assert.Equal(t, 1000, *cost.Maximum)

	assert.Equal(t, TimePattern, activity.Properties["time"].Pattern)
}

func TestPlannerResponse_Cardinality(t *testing.T) {
	days := PlannerResponse().Properties["itinerary"].Properties["days"]
	require.NotNil(t, days.MinItems)
	assert.Equal(t, 1, *days.MinItems)
	assert.Nil(t, days.MaxItems)

	activities := days.Items.Properties["activities"]
	require.NotNil(t, activities.MinItems)
	require.NotNil(t, activities.MaxItems)
	assert.Equal(t, ActivitiesPerDay, *activities.MinItems)
	assert.Equal(t, ActivitiesPerDay, *activities.MaxItems)
}

func TestPlannerResponse_TotalCostContract(t *testing.T) {
	total := PlannerResponse().Properties["itinerary"].Properties["totalEstimatedCost"]

	assert.Equal(t, []string{"USD"}, total.Properties["currency"].Enum)
	assert.Equal(t, 0, *total.Properties["min"].Minimum)
	assert.Equal(t, 0, *total.Properties["max"].Minimum)
	assert.Nil(t, total.Properties["max"].Maximum)
}

func TestPlannerResponse_SharedAndStable(t *testing.T) {
	assert.Same(t, PlannerResponse(), PlannerResponse())

	first := PlannerResponse().MustJSON()
	second := PlannerResponse().MustJSON()
	assert.Equal(t, first, second)
}

func TestSchema_JSONKeepsClosedObjects(t *testing.T) {
	data, err := PlannerResponse().JSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, false, raw["additionalProperties"])
	assert.Equal(t, []any{"itinerary"}, raw["required"])
}

func TestTimePattern(t *testing.T) {
	re := regexp.MustCompile(TimePattern)

	for _, ok := range []string{"00:00", "09:30", "19:59", "23:59"} {
		assert.True(t, re.MatchString(ok), ok)
	}
	for _, bad := range []string{"24:00", "9:30", "12:60", "12:5", "1230", " 12:30"} {
		assert.False(t, re.MatchString(bad), bad)
	}
}
