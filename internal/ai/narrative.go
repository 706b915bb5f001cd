package ai

import (
	"context"
	"fmt"
	"strings"
)

// Narrative is the three-part text generated for a post.
type Narrative struct {
	Story     string
	Purpose   string
	ArtistBio string
}

// Generator produces narrative text from image tags and/or the artisan's
// idea. Implementations may fail; callers degrade to Fallback, so generation
// is never observable as a hard failure.
type Generator interface {
	Generate(ctx context.Context, tags []string, ideaText string) (Narrative, error)
}

// Tagger extracts descriptive labels from an image. It never fails: any
// provider problem yields nil tags.
type Tagger interface {
	ExtractTags(ctx context.Context, imageURL string) []string
}

func buildPromptFromTags(tags []string) string {
	return fmt.Sprintf(`You are an AI helping artisans tell stories about their artwork.
The image seems to include: %s.

Write three sections separated by "---":
1. Story behind the art
2. Purpose of the art
3. About the artist
`, strings.Join(tags, ", "))
}

func buildPromptFromText(ideaText string) string {
	return fmt.Sprintf(`You are an AI helping artisans design unique artworks.

The artisan's idea is: %q

Create three sections separated by "---":
1. Story behind the art
2. Purpose of the art
3. About the artist
`, ideaText)
}

func buildPromptFromTagsAndText(tags []string, ideaText string) string {
	return fmt.Sprintf(`You are an AI helping artisans tell stories about their artwork.

Detected elements in the image: %s.
Artisan prompt: %q

Write three sections separated by "---":
1. Story behind the art that uses both the visual tags and the artisan's prompt
2. Purpose of the art
3. About the artist
`, strings.Join(tags, ", "), ideaText)
}

func buildPrompt(tags []string, ideaText string) string {
	switch {
	case len(tags) > 0 && ideaText != "":
		return buildPromptFromTagsAndText(tags, ideaText)
	case len(tags) > 0:
		return buildPromptFromTags(tags)
	default:
		return buildPromptFromText(ideaText)
	}
}

// splitSections splits provider output on the "---" separator the prompts
// ask for. A response without separators becomes the story alone.
func splitSections(out string) Narrative {
	parts := strings.Split(out, "---")
	n := Narrative{Story: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		n.Purpose = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		n.ArtistBio = strings.TrimSpace(parts[2])
	}
	return n
}
