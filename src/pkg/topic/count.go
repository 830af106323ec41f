package topic

import (
	"fmt"
	"strconv"
	"strings"

	"dailyfocus/local-app/src/pkg/model"
)

// CountAll counts every topic at every depth.
func CountAll(forest []model.LearningTopic) int {
	n := 0
	for _, t := range forest {
		n += 1 + CountAll(t.Subtopics)
	}
	return n
}

// CountRoot counts root topics only.
func CountRoot(forest []model.LearningTopic) int {
	return len(forest)
}

// CountBlogPosts returns how many topics, at any depth, have a written blog post.
func CountBlogPosts(forest []model.LearningTopic) int {
	n := 0
	for _, t := range forest {
		if t.BlogPost.Written {
			n++
		}
		n += CountBlogPosts(t.Subtopics)
	}
	return n
}

// CountReferenceLinks counts the links attached to every topic at any depth.
func CountReferenceLinks(forest []model.LearningTopic) int {
	n := 0
	for _, t := range forest {
		n += len(t.ReferenceLinks) + CountReferenceLinks(t.Subtopics)
	}
	return n
}

// Find returns the topic with id anywhere in the forest.
func Find(forest []model.LearningTopic, id float64) (model.LearningTopic, bool) {
	for _, t := range forest {
		if t.ID == id {
			return t, true
		}
		if found, ok := Find(t.Subtopics, id); ok {
			return found, true
		}
	}
	return model.LearningTopic{}, false
}

// ResolvePath finds a topic by its 1-based position path, such as "1.3".
func ResolvePath(forest []model.LearningTopic, path string) (model.LearningTopic, error) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	level := forest
	var current model.LearningTopic
	for depth, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return model.LearningTopic{}, fmt.Errorf("invalid topic path %q: %w", path, err)
		}
		if n < 1 || n > len(level) {
			return model.LearningTopic{}, fmt.Errorf("invalid topic path %q: no topic at position %d of level %d", path, n, depth+1)
		}
		current = level[n-1]
		level = current.Subtopics
	}
	return current, nil
}
