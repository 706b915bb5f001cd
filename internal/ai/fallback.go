package ai

import (
	"fmt"
	"strings"
)

// Fallback builds narrative text locally, as a pure function of the inputs,
// for when the generation provider is unavailable. The idea text appears
// verbatim in the story so the detail page is never empty or generic.
func Fallback(tags []string, ideaText string) Narrative {
	idea := strings.TrimSpace(ideaText)
	tagsSnippet := "visual elements"
	if len(tags) > 0 {
		if len(tags) > 6 {
			tags = tags[:6]
		}
		tagsSnippet = strings.Join(tags, ", ")
	}

	storyLines := []string{
		fmt.Sprintf("This painting draws on %s and the artist's intent: %s.", tagsSnippet, idea),
		"The composition balances texture and light to suggest personal memory and place.",
		"Subtle contrasts and repeating motifs build a quiet rhythm, inviting the viewer to pause and look closer.",
		"Symbols are used sparingly: details emerge only after a second glance, leaving room for interpretation.",
		"It feels contemporary yet rooted in lived experience, aiming to be both intimate and open-ended.",
	}

	return Narrative{
		Story: strings.Join(storyLines, "\n\n"),
		Purpose: "To offer a reflective, human moment: something calm, grounded, and honest. " +
			"It is meant to be revisited, revealing new details over time.",
		ArtistBio: "An emerging artist focused on everyday symbolism and atmosphere, " +
			"combining observational detail with gentle abstraction.",
	}
}
