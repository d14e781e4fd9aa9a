package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripcircle/internal/types"
)

func TestClassifyWeatherQuestion(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("What's the weather in Paris?", types.AdvisorContext{})

	assert.Equal(t, types.IntentWeather, intent.Type)
	assert.Equal(t, "Paris", intent.Entities.Location)
	assert.GreaterOrEqual(t, intent.Confidence, 0.7)
}

func TestClassifyActivityQuestion(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("What can we do in Tokyo? Maybe some hiking or a museum visit", types.AdvisorContext{})

	assert.Equal(t, types.IntentActivity, intent.Type)
	assert.Equal(t, "Tokyo", intent.Entities.Location)
	assert.Contains(t, intent.Entities.Activities, "hiking")
	assert.Contains(t, intent.Entities.Activities, "museum")
}

func TestClassifyAccommodationAndTransport(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Where should we stay? Any good hotel?", types.AdvisorContext{})
	assert.Equal(t, types.IntentAccommodation, intent.Type)

	intent = c.Classify("How do we get from the airport by train?", types.AdvisorContext{})
	assert.Equal(t, types.IntentTransport, intent.Type)
}

func TestClassifyEmptyMessageIsGeneral(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("", types.AdvisorContext{})

	assert.Equal(t, types.IntentGeneral, intent.Type)
	assert.Equal(t, 0.3, intent.Confidence)
}

func TestClassifyNoSignalWithDestinationIsWeatherFollowUp(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("ok sounds good", types.AdvisorContext{Destination: "Barcelona"})

	assert.Equal(t, types.IntentWeather, intent.Type)
	assert.Equal(t, 0.3, intent.Confidence)
}

func TestClassifyConfidenceBands(t *testing.T) {
	c := NewClassifier()

	// Several weather keywords plus a pattern: large gap over runner-up.
	intent := c.Classify("What's the weather forecast? Will it rain or snow?", types.AdvisorContext{})
	assert.Equal(t, types.IntentWeather, intent.Type)
	assert.Equal(t, 0.9, intent.Confidence)
}

func TestExtractTimeReference(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("Will it rain tomorrow in Lisbon?", types.AdvisorContext{})
	assert.Equal(t, "tomorrow", intent.Entities.TimeReference)

	intent = c.Classify("things to do this weekend", types.AdvisorContext{})
	assert.Equal(t, "this weekend", intent.Entities.TimeReference)
}

func TestExtractMultiWordLocation(t *testing.T) {
	c := NewClassifier()

	intent := c.Classify("What's the weather in New York City?", types.AdvisorContext{})
	assert.Equal(t, "New York City", intent.Entities.Location)
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := NewClassifier()
	msg := "help me plan a trip with hiking in Geneva next week"

	a := c.Classify(msg, types.AdvisorContext{})
	b := c.Classify(msg, types.AdvisorContext{})
	assert.Equal(t, a, b)
}
