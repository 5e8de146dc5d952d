package application

import (
	"context"
	"fmt"
	"strings"

	"code-converter/backend/internal/features/conversion/domain"
)

const (
	blueButtonMarkup   = "<button class='bg-blue-500 text-white p-2 rounded-md shadow-md hover:bg-blue-600 transition-colors'>Blue Button</button>"
	largeHeadingMarkup = "<h1 class='text-4xl font-bold text-gray-800 mb-4'>Large Heading</h1>"
	inputFieldMarkup   = "<input type='text' placeholder='Enter text...' class='border border-gray-300 rounded-md p-2 focus:ring-2 focus:ring-blue-500 focus:border-transparent'>"
	cardMarkup         = `
<div class="bg-white rounded-lg shadow-lg p-6 max-w-sm mx-auto">
    <h2 class="text-xl font-semibold mb-2">Sample Card</h2>
    <p class="text-gray-600">This is a simple card component.</p>
    <button class="mt-4 bg-purple-500 text-white px-4 py-2 rounded-md hover:bg-purple-600">Learn More</button>
</div>
` + "            "
	fallbackMarkupFormat = `
<div class="p-4 bg-yellow-100 border border-yellow-400 text-yellow-700 rounded-md">
    <p>Fallback: AI model not available or call failed.</p>
    <p>Current input: "%s"</p>
</div>
` + "        "
)

// placeholderRule matches when every keyword occurs in the lower-cased text.
type placeholderRule struct {
	keywords []string
	markup   string
}

// Order matters: the first matching rule wins.
var placeholderRules = []placeholderRule{
	{keywords: []string{"button", "blue"}, markup: blueButtonMarkup},
	{keywords: []string{"heading", "large"}, markup: largeHeadingMarkup},
	{keywords: []string{"input field"}, markup: inputFieldMarkup},
	{keywords: []string{"card"}, markup: cardMarkup},
}

// PlaceholderCode maps a description to canned markup. Descriptions that match
// no rule get a fallback snippet that quotes the input unchanged.
func PlaceholderCode(description string) domain.GeneratedCode {
	lower := strings.ToLower(description)
	for _, rule := range placeholderRules {
		if containsAll(lower, rule.keywords) {
			return domain.GeneratedCode(rule.markup)
		}
	}
	return domain.GeneratedCode(fmt.Sprintf(fallbackMarkupFormat, description))
}

func containsAll(s string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(s, kw) {
			return false
		}
	}
	return true
}

// placeholderStrategy is the last resort of the resolver. It never fails.
type placeholderStrategy struct{}

// NewPlaceholderStrategy returns the deterministic keyword strategy.
func NewPlaceholderStrategy() Strategy {
	return placeholderStrategy{}
}

func (placeholderStrategy) Name() string {
	return PlaceholderStrategyName
}

func (placeholderStrategy) Available() bool {
	return true
}

func (placeholderStrategy) Generate(_ context.Context, description string) (string, error) {
	return string(PlaceholderCode(description)), nil
}
