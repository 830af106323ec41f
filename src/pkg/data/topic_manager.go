package data

import (
	"context"
	"fmt"
	"strings"

	"dailyfocus/local-app/src/pkg/calendar"
	"dailyfocus/local-app/src/pkg/event"
	"dailyfocus/local-app/src/pkg/log"
	"dailyfocus/local-app/src/pkg/model"
	"dailyfocus/local-app/src/pkg/topic"
)

// TopicManager handles the learning topics of the current week
type TopicManager struct {
	managerBase
}

func (tm *TopicManager) mutate(op string, id *float64, fn func([]model.LearningTopic) []model.LearningTopic) error {
	ctx := context.Background()

	tm.mu.Lock()
	topics := tm.gateway.CurrentWeekTopics()
	if id != nil {
		if _, ok := topic.Find(topics, *id); !ok {
			tm.mu.Unlock()
			tm.logger.Warn(ctx, "Topic not found", log.Fields{"operation": op, "id": *id})
			return ErrTopicNotFound
		}
	}
	topics = fn(topics)
	tm.gateway.SetCurrentWeekTopics(topics)
	tm.mu.Unlock()

	tm.logger.Debug(ctx, "Topics updated", log.Fields{"operation": op, "count": len(topics)})
	tm.events.Publish(event.Event{Type: event.TopicsChanged, Data: topic.Clone(topics)})
	return nil
}

// Topics returns the live topic forest.
func (tm *TopicManager) Topics() []model.LearningTopic {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.gateway.CurrentWeekTopics()
}

// CurrentWeekID returns the ISO week of the manager clock.
func (tm *TopicManager) CurrentWeekID() string {
	return calendar.WeekID(tm.clock.Now())
}

// Resolve finds a live topic by its position path.
func (tm *TopicManager) Resolve(path string) (model.LearningTopic, error) {
	t, err := topic.ResolvePath(tm.Topics(), path)
	if err != nil {
		return model.LearningTopic{}, fmt.Errorf("%w: %v", ErrTopicNotFound, err)
	}
	return t, nil
}

// Add appends a root topic.
func (tm *TopicManager) Add(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankText
	}
	now := tm.clock.Now()
	return tm.mutate("add", nil, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.Append(ts, title, now)
	})
}

func (tm *TopicManager) AddSubtopic(parentID float64, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankText
	}
	now := tm.clock.Now()
	return tm.mutate("add_subtopic", &parentID, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.AddSubtopic(ts, parentID, title, now)
	})
}

// Update changes the title and notes named by p.
func (tm *TopicManager) Update(id float64, p topic.Patch) error {
	now := tm.clock.Now()
	return tm.mutate("update", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.UpdateFields(ts, id, p, now)
	})
}

func (tm *TopicManager) UpdateTitle(id float64, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankText
	}
	return tm.Update(id, topic.Patch{Title: &title})
}

func (tm *TopicManager) UpdateNotes(id float64, notes string) error {
	return tm.Update(id, topic.Patch{Notes: &notes})
}

func (tm *TopicManager) Delete(id float64) error {
	return tm.mutate("delete", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.Delete(ts, id)
	})
}

func (tm *TopicManager) ToggleExpansion(id float64) error {
	return tm.mutate("toggle_expansion", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.ToggleExpansion(ts, id)
	})
}

func (tm *TopicManager) ExpandAll() error {
	return tm.mutate("expand_all", nil, topic.ExpandAll)
}

func (tm *TopicManager) CollapseAll() error {
	return tm.mutate("collapse_all", nil, topic.CollapseAll)
}

func (tm *TopicManager) ToggleBlogPost(id float64) error {
	now := tm.clock.Now()
	return tm.mutate("toggle_blog_post", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.ToggleBlogPost(ts, id, now)
	})
}

func (tm *TopicManager) SetBlogPostURL(id float64, url string) error {
	now := tm.clock.Now()
	return tm.mutate("set_blog_url", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.SetBlogPostURL(ts, id, url, now)
	})
}

// AddLink attaches url to the topic.
func (tm *TopicManager) AddLink(id float64, url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrBlankText
	}
	now := tm.clock.Now()
	return tm.mutate("add_link", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.AddReferenceLink(ts, id, url, now)
	})
}

// UpdateLink replaces the URL of the link at 1-based index n.
func (tm *TopicManager) UpdateLink(id float64, n int, url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrBlankText
	}
	linkID, err := tm.linkAt(id, n)
	if err != nil {
		return err
	}
	now := tm.clock.Now()
	return tm.mutate("update_link", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.UpdateReferenceLink(ts, id, linkID, url, now)
	})
}

// DeleteLink removes the link at 1-based index n.
func (tm *TopicManager) DeleteLink(id float64, n int) error {
	linkID, err := tm.linkAt(id, n)
	if err != nil {
		return err
	}
	now := tm.clock.Now()
	return tm.mutate("delete_link", &id, func(ts []model.LearningTopic) []model.LearningTopic {
		return topic.DeleteReferenceLink(ts, id, linkID, now)
	})
}

func (tm *TopicManager) linkAt(id float64, n int) (float64, error) {
	t, ok := topic.Find(tm.Topics(), id)
	if !ok {
		return 0, ErrTopicNotFound
	}
	if n < 1 || n > len(t.ReferenceLinks) {
		return 0, fmt.Errorf("%w: %d", ErrLinkNotFound, n)
	}
	return t.ReferenceLinks[n-1].ID, nil
}
