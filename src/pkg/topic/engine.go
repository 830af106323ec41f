// Package topic implements the learning topic tree engine. It mirrors the task
// engine without completion: mutations stamp UpdatedAt on the touched topic
// only, never on its ancestors.
package topic

import (
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/model"
)

// Patch is a partial update of a topic's editable text fields.
// Nil fields are left as they are.
type Patch struct {
	Title *string
	Notes *string
}

// Create returns a new leaf topic, or false when title is blank.
func Create(title string, now time.Time) (model.LearningTopic, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.LearningTopic{}, false
	}
	ts := now.UTC()
	return model.LearningTopic{
		ID:             model.NewID(now),
		Title:          title,
		Notes:          "",
		ReferenceLinks: []model.ReferenceLink{},
		Subtopics:      []model.LearningTopic{},
		Expanded:       false,
		BlogPost:       model.BlogPost{Written: false},
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}, true
}

// Append creates a topic from title and adds it at the end of the forest.
func Append(forest []model.LearningTopic, title string, now time.Time) []model.LearningTopic {
	t, ok := Create(title, now)
	if !ok {
		return forest
	}
	out := make([]model.LearningTopic, 0, len(forest)+1)
	out = append(out, forest...)
	return append(out, t)
}

// UpdateFields applies a partial update to the topic with id. A blank title
// in the patch is ignored.
func UpdateFields(forest []model.LearningTopic, id float64, p Patch, now time.Time) []model.LearningTopic {
	var title string
	if p.Title != nil {
		title = strings.TrimSpace(*p.Title)
	}
	if title == "" && p.Notes == nil {
		return forest
	}
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		if title != "" {
			t.Title = title
		}
		if p.Notes != nil {
			t.Notes = *p.Notes
		}
		return t
	})
}

// UpdateTitle is UpdateFields with only the title set.
func UpdateTitle(forest []model.LearningTopic, id float64, title string, now time.Time) []model.LearningTopic {
	return UpdateFields(forest, id, Patch{Title: &title}, now)
}

// UpdateNotes is UpdateFields with only the notes set.
func UpdateNotes(forest []model.LearningTopic, id float64, notes string, now time.Time) []model.LearningTopic {
	return UpdateFields(forest, id, Patch{Notes: &notes}, now)
}

// Delete removes the topic with id together with its subtree.
func Delete(forest []model.LearningTopic, id float64) []model.LearningTopic {
	out, _ := remove(forest, id)
	return out
}

// AddSubtopic appends a new leaf under parentID and expands the parent.
func AddSubtopic(forest []model.LearningTopic, parentID float64, title string, now time.Time) []model.LearningTopic {
	child, ok := Create(title, now)
	if !ok {
		return forest
	}
	return touch(forest, parentID, now, func(t model.LearningTopic) model.LearningTopic {
		subs := make([]model.LearningTopic, 0, len(t.Subtopics)+1)
		subs = append(subs, t.Subtopics...)
		t.Subtopics = append(subs, child)
		t.Expanded = true
		return t
	})
}

// ToggleExpansion flips expanded on the matched topic only. Expansion is view
// state and does not count as an edit.
func ToggleExpansion(forest []model.LearningTopic, id float64) []model.LearningTopic {
	out, _ := update(forest, id, func(t model.LearningTopic) model.LearningTopic {
		t.Expanded = !t.Expanded
		return t
	})
	return out
}

// ExpandAll expands every topic that has subtopics and collapses leaves.
func ExpandAll(forest []model.LearningTopic) []model.LearningTopic {
	return mapAll(forest, func(t model.LearningTopic) model.LearningTopic {
		t.Expanded = t.HasSubtopics()
		return t
	})
}

// CollapseAll collapses every topic.
func CollapseAll(forest []model.LearningTopic) []model.LearningTopic {
	return mapAll(forest, func(t model.LearningTopic) model.LearningTopic {
		t.Expanded = false
		return t
	})
}

// AreAllExpanded reports whether every topic with subtopics is expanded.
// A forest without any subtopics is never considered expanded.
func AreAllExpanded(forest []model.LearningTopic) bool {
	found := false
	var walk func([]model.LearningTopic) bool
	walk = func(topics []model.LearningTopic) bool {
		for _, t := range topics {
			if !t.HasSubtopics() {
				continue
			}
			found = true
			if !t.Expanded || !walk(t.Subtopics) {
				return false
			}
		}
		return true
	}
	return walk(forest) && found
}

// ToggleBlogPost flips whether the topic's blog post is written.
func ToggleBlogPost(forest []model.LearningTopic, id float64, now time.Time) []model.LearningTopic {
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		t.BlogPost.Written = !t.BlogPost.Written
		return t
	})
}

// SetBlogPostURL records the blog post URL and marks the post written.
func SetBlogPostURL(forest []model.LearningTopic, id float64, url string, now time.Time) []model.LearningTopic {
	url = strings.TrimSpace(url)
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		t.BlogPost = model.BlogPost{Written: true, URL: url}
		return t
	})
}

// Clone returns a deep copy of the forest that shares no slices with it.
func Clone(forest []model.LearningTopic) []model.LearningTopic {
	if forest == nil {
		return nil
	}
	out := make([]model.LearningTopic, len(forest))
	for i, t := range forest {
		links := make([]model.ReferenceLink, len(t.ReferenceLinks))
		copy(links, t.ReferenceLinks)
		t.ReferenceLinks = links
		t.Subtopics = Clone(t.Subtopics)
		out[i] = t
	}
	return out
}

// touch applies fn to the topic with id and stamps its UpdatedAt.
func touch(forest []model.LearningTopic, id float64, now time.Time, fn func(model.LearningTopic) model.LearningTopic) []model.LearningTopic {
	out, _ := update(forest, id, func(t model.LearningTopic) model.LearningTopic {
		t = fn(t)
		t.UpdatedAt = now.UTC()
		return t
	})
	return out
}

func update(topics []model.LearningTopic, id float64, fn func(model.LearningTopic) model.LearningTopic) ([]model.LearningTopic, bool) {
	for i, t := range topics {
		if t.ID == id {
			return replaceAt(topics, i, fn(t)), true
		}
		if t.HasSubtopics() {
			subs, found := update(t.Subtopics, id, fn)
			if found {
				t.Subtopics = subs
				return replaceAt(topics, i, t), true
			}
		}
	}
	return topics, false
}

func remove(topics []model.LearningTopic, id float64) ([]model.LearningTopic, bool) {
	for i, t := range topics {
		if t.ID == id {
			out := make([]model.LearningTopic, 0, len(topics)-1)
			out = append(out, topics[:i]...)
			return append(out, topics[i+1:]...), true
		}
		if t.HasSubtopics() {
			subs, found := remove(t.Subtopics, id)
			if found {
				t.Subtopics = subs
				return replaceAt(topics, i, t), true
			}
		}
	}
	return topics, false
}

func mapAll(topics []model.LearningTopic, fn func(model.LearningTopic) model.LearningTopic) []model.LearningTopic {
	out := make([]model.LearningTopic, len(topics))
	for i, t := range topics {
		if t.HasSubtopics() {
			t.Subtopics = mapAll(t.Subtopics, fn)
		}
		out[i] = fn(t)
	}
	return out
}

func replaceAt(topics []model.LearningTopic, i int, t model.LearningTopic) []model.LearningTopic {
	out := make([]model.LearningTopic, len(topics))
	copy(out, topics)
	out[i] = t
	return out
}
