package topic

import (
	"strings"
	"time"

	"dailyfocus/local-app/src/pkg/model"
)

// AddReferenceLink appends a link to the topic with id. Blank URLs are ignored.
func AddReferenceLink(forest []model.LearningTopic, id float64, url string, now time.Time) []model.LearningTopic {
	url = strings.TrimSpace(url)
	if url == "" {
		return forest
	}
	link := model.ReferenceLink{ID: model.NewID(now), URL: url}
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		links := make([]model.ReferenceLink, 0, len(t.ReferenceLinks)+1)
		links = append(links, t.ReferenceLinks...)
		t.ReferenceLinks = append(links, link)
		return t
	})
}

// UpdateReferenceLink changes the URL of one link of one topic.
func UpdateReferenceLink(forest []model.LearningTopic, id, linkID float64, url string, now time.Time) []model.LearningTopic {
	url = strings.TrimSpace(url)
	if url == "" {
		return forest
	}
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		links := make([]model.ReferenceLink, len(t.ReferenceLinks))
		for i, l := range t.ReferenceLinks {
			if l.ID == linkID {
				l.URL = url
			}
			links[i] = l
		}
		t.ReferenceLinks = links
		return t
	})
}

// DeleteReferenceLink removes one link from one topic.
func DeleteReferenceLink(forest []model.LearningTopic, id, linkID float64, now time.Time) []model.LearningTopic {
	return touch(forest, id, now, func(t model.LearningTopic) model.LearningTopic {
		links := make([]model.ReferenceLink, 0, len(t.ReferenceLinks))
		for _, l := range t.ReferenceLinks {
			if l.ID != linkID {
				links = append(links, l)
			}
		}
		t.ReferenceLinks = links
		return t
	})
}
