// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"fmt"

	"github.com/goccy/go-json"
)

const basicSystemPrompt = `You are a professional travel recommendation assistant. Based on user preferences and hotel review information, recommend the most suitable hotels for the user.

Please analyze the match between each hotel's review themes and user preferences, then provide a sorted recommendation list.

For each recommended hotel, please provide:
1. Hotel name and rating
2. Recommendation reason (based on specific information from reviews)
3. Special highlights

Please reply in English.`

const refinedSystemPrompt = `You are an advanced travel recommendation assistant. Now you need to optimize the recommendation list based on completed information.

Rules for information completion:
1. Infer similar features based on geographic location
2. Infer missing tags based on similar hotels
3. Provide confidence scores for inferred information

Please provide more accurate recommendations and indicate which information is inferred.`

// askForPreferences is the answer when the preferences carry no usable
// signal.
const askForPreferences = "I understand your requirements. Please tell me which aspects of the hotel you care about most, such as location features, transportation convenience, natural environment, etc., and I will provide personalized recommendations."

func basicUserMessage(preferences string, summaries []Summary) (string, error) {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode venue summaries: %w", err)
	}
	return fmt.Sprintf("User preferences: %s\n\nHotel information:\n%s\n\nPlease recommend the most suitable hotels based on user preferences.",
		preferences, data), nil
}

func refinedUserMessage(preferences, initial string, report Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode completion report: %w", err)
	}
	return fmt.Sprintf("User preferences: %s\n\nInitial recommendations:\n%s\n\nCompleted information:\n%s\n\nPlease provide optimized recommendations based on completed information.",
		preferences, initial, data), nil
}
