package enrich

import (
	"context"
	"log"
	"time"

	"artfeed-backend/internal/ai"
	"artfeed-backend/internal/domain/posts"
)

const (
	defaultInterval    = 15 * time.Second
	defaultMaxAttempts = 3
)

// Enricher drains the narrative outbox: posts created with a pending status
// are picked up oldest first, sent to the generation provider, and marked
// ready. Failures are retried on later passes; once the attempt budget is
// spent the deterministic local fallback is written instead, so no post
// stays without narrative text.
type Enricher struct {
	store  *posts.Store
	gen    ai.Generator
	tagger ai.Tagger

	interval    time.Duration
	maxAttempts int
	kick        chan struct{}
}

func New(store *posts.Store, gen ai.Generator, tagger ai.Tagger) *Enricher {
	return &Enricher{
		store:       store,
		gen:         gen,
		tagger:      tagger,
		interval:    defaultInterval,
		maxAttempts: defaultMaxAttempts,
		kick:        make(chan struct{}, 1),
	}
}

// Kick wakes the worker immediately, typically right after a post is
// created. Non-blocking; a pending wake-up is enough.
func (e *Enricher) Kick() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

// Run processes the outbox until the context is cancelled. Intended to run
// as a single goroutine; claiming is oldest-first and sequential.
func (e *Enricher) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		e.drain(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-e.kick:
		}
	}
}

func (e *Enricher) drain(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		post, err := e.store.NextPending()
		if err != nil {
			log.Printf("[ENRICH] claim failed: %v", err)
			return
		}
		if post == nil {
			return
		}
		if !e.process(ctx, post) {
			// Left pending for a later pass; stop so this post
			// does not spin the loop.
			return
		}
	}
}

// process returns true when the post reached the ready state.
func (e *Enricher) process(ctx context.Context, post *posts.Post) bool {
	var tags []string
	if e.tagger != nil && post.ImagePath != "" {
		tags = e.tagger.ExtractTags(ctx, post.ImagePath)
	}

	narrative, err := e.generate(ctx, tags, post)
	if err != nil {
		if bumpErr := e.store.BumpAttempts(post.ID); bumpErr != nil {
			log.Printf("[ENRICH] post %d: %v", post.ID, bumpErr)
		}
		if post.NarrativeAttempts+1 < e.maxAttempts {
			log.Printf("[ENRICH] post %d attempt %d failed, will retry: %v",
				post.ID, post.NarrativeAttempts+1, err)
			return false
		}
		log.Printf("[ENRICH] post %d: attempts exhausted, using local fallback: %v", post.ID, err)
		narrative = ai.Fallback(tags, post.IdeaText)
	}

	// Never leave the story empty: fall back to the artisan's own words.
	if narrative.Story == "" {
		narrative.Story = post.IdeaText
	}

	if err := e.store.SetNarrative(post.ID, narrative.Story, narrative.Purpose, narrative.ArtistBio); err != nil {
		log.Printf("[ENRICH] post %d: %v", post.ID, err)
		return false
	}
	return true
}

func (e *Enricher) generate(ctx context.Context, tags []string, post *posts.Post) (ai.Narrative, error) {
	if e.gen == nil {
		return ai.Fallback(tags, post.IdeaText), nil
	}
	genCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return e.gen.Generate(genCtx, tags, post.IdeaText)
}
