package moderation

import (
	"fmt"

	"github.com/reclaimhq/reclaim/internal/items"
)

const promptTemplate = `You're moderating a school lost & found system. Check if this item submission looks legit or sus.

Title: %s
Category: %s
Description: %s
Location: %s
Date: %s

Respond in JSON only with: isLegitimate (true/false), confidence (0-100), reasoning (short), flags (array). Look for weird stuff like gibberish, spam, fake items, or inappropriate content.`

// BuildPrompt renders the moderation prompt for an item. An empty
// description is reported as N/A.
func BuildPrompt(item *items.Item) string {
	description := item.Description
	if description == "" {
		description = "N/A"
	}

	return fmt.Sprintf(
		promptTemplate,
		item.Title,
		item.Category,
		description,
		item.LocationFound,
		item.DateFound,
	)
}
